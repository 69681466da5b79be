// Package iolisting reads and writes JGI XML file listings.
//
// A combined listing has a "Data" root element with one
// "organismDownloads" element per project. The portal returns a single
// "organismDownloads" element for each project request.
package iolisting

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gnmyco/pkg/listing"
)

// ListingFile is the default name of the combined listing.
const ListingFile = "MycoCosm_data.xml"

const (
	rootElement     = "Data"
	organismElement = "organismDownloads"
)

type xmlOrganism struct {
	Name    string      `xml:"name,attr"`
	Folders []xmlFolder `xml:"folder"`
}

type xmlFolder struct {
	Name    string      `xml:"name,attr"`
	Folders []xmlFolder `xml:"folder"`
	Files   []xmlFile   `xml:"file"`
}

type xmlFile struct {
	Filename  string `xml:"filename,attr"`
	URL       string `xml:"url,attr"`
	Size      string `xml:"sizeInBytes,attr"`
	Timestamp string `xml:"timestamp,attr"`
}

// Load reads a listing file.
func Load(path string) (*listing.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ListingReadError(path, err)
	}
	defer f.Close()

	res, err := Decode(f)
	if err != nil {
		return nil, ListingReadError(path, err)
	}
	return res, nil
}

// Decode reads a combined listing or a single project listing.
func Decode(r io.Reader) (*listing.Tree, error) {
	dec := xml.NewDecoder(r)
	res := &listing.Tree{}

	start, err := rootStart(dec)
	if err != nil {
		return nil, err
	}

	if start.Name.Local == organismElement {
		var org xmlOrganism
		if err = dec.DecodeElement(&org, &start); err != nil {
			return nil, err
		}
		res.Organisms = append(res.Organisms, org.toOrganism())
		return res, nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != organismElement {
			if err = dec.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		var org xmlOrganism
		if err = dec.DecodeElement(&org, &se); err != nil {
			return nil, err
		}
		res.Organisms = append(res.Organisms, org.toOrganism())
	}
	return res, nil
}

func rootStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, errors.New("listing has no root element")
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func (o xmlOrganism) toOrganism() listing.Organism {
	res := listing.Organism{Name: o.Name}
	for _, v := range o.Folders {
		res.Folders = append(res.Folders, v.toFolder())
	}
	return res
}

func (f xmlFolder) toFolder() listing.Folder {
	res := listing.Folder{Name: f.Name}
	for _, v := range f.Folders {
		res.Folders = append(res.Folders, v.toFolder())
	}
	for _, v := range f.Files {
		size, err := strconv.ParseInt(strings.TrimSpace(v.Size), 10, 64)
		if err != nil {
			slog.Warn("Bad file size in listing, size is unknown",
				"filename", v.Filename, "size", v.Size)
			size = 0
		}
		res.Files = append(res.Files, listing.File{
			Filename:  v.Filename,
			URL:       v.URL,
			Size:      size,
			Timestamp: v.Timestamp,
		})
	}
	return res
}

// rawOrganism keeps a project listing verbatim for rewriting.
type rawOrganism struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

func (r rawOrganism) name() string {
	for _, v := range r.Attrs {
		if v.Name.Local == "name" {
			return v.Value
		}
	}
	return ""
}

type rawData struct {
	XMLName   xml.Name      `xml:"Data"`
	Name      string        `xml:"name,attr"`
	Organisms []rawOrganism `xml:"organismDownloads"`
}

// Combined accumulates project listings into one file.
type Combined struct {
	data  rawData
	codes map[string]struct{}
}

// LoadCombined reads a combined listing. A missing file gives an empty
// listing.
func LoadCombined(path string) (*Combined, error) {
	res := &Combined{
		data:  rawData{Name: "Mycocosm"},
		codes: make(map[string]struct{}),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return res, nil
	}
	if err != nil {
		return nil, ListingReadError(path, err)
	}
	if err = xml.Unmarshal(data, &res.data); err != nil {
		return nil, ListingReadError(path, err)
	}
	for _, v := range res.data.Organisms {
		res.codes[v.name()] = struct{}{}
	}
	return res, nil
}

// Has checks if a project listing is present.
func (c *Combined) Has(code string) bool {
	_, ok := c.codes[code]
	return ok
}

// Len returns the number of project listings.
func (c *Combined) Len() int {
	return len(c.data.Organisms)
}

// Append adds a single project listing returned by the portal.
func (c *Combined) Append(data []byte) (string, error) {
	var org rawOrganism
	if err := xml.Unmarshal(data, &org); err != nil {
		return "", err
	}
	if org.XMLName.Local != organismElement {
		return "", fmt.Errorf("unexpected listing element <%s>",
			org.XMLName.Local)
	}
	code := org.name()
	if code == "" {
		return "", errors.New("project listing has no name")
	}
	org.XMLName = xml.Name{Local: organismElement}
	c.data.Organisms = append(c.data.Organisms, org)
	c.codes[code] = struct{}{}
	return code, nil
}

// Write saves the combined listing. The file is replaced atomically so
// an interrupted run keeps the previous complete version.
func (c *Combined) Write(path string) error {
	out, err := xml.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return ListingWriteError(path, err)
	}
	tmp := path + ".tmp"
	data := append([]byte(xml.Header), out...)
	data = append(data, '\n')
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		return ListingWriteError(path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return ListingWriteError(path, err)
	}
	return nil
}
