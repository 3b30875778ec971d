package notifications

// StaticData is the part of the notification template data model set upon initialization.
type StaticData struct {
	Host     string
	TitleTag string
}

// Data is the notification template data model.
type Data struct {
	StaticData
	Title   string
	Message string
}
