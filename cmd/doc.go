// Package cmd contains the command-line interface (CLI) definitions and execution logic for gafilter.
// It provides the root command and one subcommand per filter operation.
//
// Key components:
//   - rootCmd: Root command holding the account, logging and notification flags.
//   - hostname, exclude, lowercase, custom-exclude, advanced: Filter creation subcommands.
//   - delete, list, get: Filter lookup and removal subcommands.
//   - exclude-query-params: Reporting view settings subcommand.
//
// Usage examples:
//   - Run the CLI from main.go:
//     cmd.Execute()
//   - Exclude referrer spam from a list kept in git:
//     gafilter exclude "Referrer Spam" --kind campaign-source --from-git https://github.com/org/lists.git//spam.txt
//
// The package integrates with actions, analytics, notifications, lists and flags packages,
// using Cobra for CLI parsing and logrus for logging.
package cmd
