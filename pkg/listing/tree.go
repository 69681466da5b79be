// Package listing selects the genome assembly and the gene models file of
// every project from the hierarchical JGI file listing.
//
// The listing is a tree of named folders with file entries. For each
// organism the resolver finds the "Files" root, the unmasked and masked
// assembly folders and the filtered gene models folder, and applies the
// selection rules to their entries.
package listing

import "strings"

// Folder and collection names used by the JGI listing.
const (
	FilesFolder      = "Files"
	AssemblyFolder   = "Assembly"
	AnnotationFolder = "Annotation"
	UnmaskedFolder   = "Genome Assembly (unmasked)"
	MaskedFolder     = "Genome Assembly (masked)"
	FilteredFolder   = `Filtered Models ("best")`
	GenesFolder      = "Genes"
)

// Tree is a complete file listing.
type Tree struct {
	Organisms []Organism
}

// Organism is the listing of one project.
type Organism struct {
	// Name is the project code as given by the listing.
	Name    string
	Folders []Folder
}

// Folder is a named node of the listing.
type Folder struct {
	Name    string
	Folders []Folder
	Files   []File
}

// File is a downloadable entry.
type File struct {
	Filename string
	// URL is a path relative to the JGI download host.
	URL  string
	Size int64
	// Timestamp is the modification time in US locale format,
	// for example "Sun Oct 12 11:02:03 PDT 2014".
	Timestamp string
}

// ProjectCode returns the project code embedded in the URL, which is its
// third slash-separated component ("/portal/Aspnid1/download/...").
func (f File) ProjectCode() string {
	parts := strings.Split(f.URL, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// Folder returns the first direct child folder with the given name.
func (o *Organism) Folder(name string) (*Folder, bool) {
	return findFolder(o.Folders, name)
}

// Folder returns the first direct child folder with the given name.
func (f *Folder) Folder(name string) (*Folder, bool) {
	return findFolder(f.Folders, name)
}

// AllFiles returns files of the folder and all its descendants in
// document order.
func (f *Folder) AllFiles() []File {
	res := append([]File(nil), f.Files...)
	for i := range f.Folders {
		res = append(res, f.Folders[i].AllFiles()...)
	}
	return res
}

func findFolder(ff []Folder, name string) (*Folder, bool) {
	for i := range ff {
		if ff[i].Name == name {
			return &ff[i], true
		}
	}
	return nil, false
}
