// Package ioinput reads optional user inputs of a download run: the
// exclusion list, hardcoded gene models files and the index of files
// downloaded by previous runs.
package ioinput

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Exclusions reads project codes to skip. Every line gives one code as
// its first whitespace-separated field. Blank lines and lines that start
// with '#' are ignored.
func Exclusions(path string) (map[string]struct{}, error) {
	res := make(map[string]struct{})
	err := readLines(path, func(_ int, line string) error {
		if strings.HasPrefix(line, "#") {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		res[fields[0]] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Overrides reads a tab-separated file that maps project codes to gene
// models filenames. Lines that start with '#' are ignored. A missing
// file gives an empty map.
func Overrides(path string) (map[string]string, error) {
	res := make(map[string]string)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("No hardcoded gene models file", "path", path)
		return res, nil
	}
	err := readPairs(path, func(k, v string) {
		res[k] = v
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Previous reads the prior-locations index, a tab-separated file of
// filename and directory pairs.
func Previous(path string) (map[string]string, error) {
	res := make(map[string]string)
	err := readPairs(path, func(k, v string) {
		res[k] = v
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ScanPrevious walks dir recursively and writes every "*.gz" file as a
// "filename<TAB>directory" line to w. It returns the number of lines.
func ScanPrevious(dir string, w io.Writer) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, ReadInputError(dir, err)
	}
	if !info.IsDir() {
		return 0, ReadInputError(dir, fmt.Errorf("%s is not a directory", dir))
	}

	bw := bufio.NewWriter(w)
	var count int
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".gz") {
			return nil
		}
		count++
		_, err = fmt.Fprintf(bw, "%s\t%s\n", d.Name(), filepath.Dir(path))
		return err
	})
	if err != nil {
		return count, ReadInputError(dir, err)
	}
	if err = bw.Flush(); err != nil {
		return count, ReadInputError(dir, err)
	}
	return count, nil
}

func readPairs(path string, fn func(k, v string)) error {
	return readLines(path, func(num int, line string) error {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			return nil
		}
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return InputFormatError(path, num, line)
		}
		fn(fields[0], fields[1])
		return nil
	})
}

func readLines(path string, fn func(int, string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return ReadInputError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var num int
	for sc.Scan() {
		num++
		if err = fn(num, sc.Text()); err != nil {
			return err
		}
	}
	if err = sc.Err(); err != nil {
		return ReadInputError(path, err)
	}
	return nil
}
