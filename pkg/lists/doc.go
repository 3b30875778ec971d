// Package lists loads the raw values used to build batched exclude filters.
//
// Values can come from command-line arguments, local files (or stdin), and files stored in Git
// repositories. File content is one value per line; blank lines and lines starting with "#"
// are ignored.
//
// Usage example:
//
//	src, err := lists.ParseGitSource("https://github.com/org/spam-lists.git//referrers.txt@main", lists.GitAuth{})
//	if err != nil {
//	    return err
//	}
//	values, err := lists.Load(ctx, lists.StaticSource(args), lists.FileSource{Path: "ips.txt"}, src)
package lists
