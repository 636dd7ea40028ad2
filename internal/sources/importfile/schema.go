package importfile

// Entry is a single bookmark draft in the import file.
// remindAt, when present, is a local wall-clock value.
type Entry struct {
	URL      string   `yaml:"url"`
	Title    string   `yaml:"title"`
	Tags     []string `yaml:"tags"`
	RemindAt string   `yaml:"remindAt"`
	Repeat   string   `yaml:"repeat"`
}

// File is the root structure of the import yaml.
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}
