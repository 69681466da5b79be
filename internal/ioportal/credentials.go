package ioportal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"golang.org/x/term"
)

// Environment variables with JGI credentials.
const (
	EnvUser     = "JGI_USER"
	EnvPassword = "JGI_PASSWORD"
)

// Credentials of a JGI account.
type Credentials struct {
	User     string
	Password string
}

func (c Credentials) valid() bool {
	return c.User != "" && c.Password != ""
}

// Prompter asks a user for credentials.
type Prompter struct {
	// Out receives prompts.
	Out io.Writer
	// SaveTo is the file where credentials are stored if the user agrees.
	// Saving is not offered when it is empty.
	SaveTo string

	in           *bufio.Reader
	readPassword func() (string, error)
}

// NewPrompter creates a Prompter reading from in. Passwords are read
// from the same stream.
func NewPrompter(in io.Reader, out io.Writer, saveTo string) *Prompter {
	return &Prompter{Out: out, SaveTo: saveTo, in: bufio.NewReader(in)}
}

// NewTerminalPrompter creates a Prompter for the standard input. Typed
// passwords are not echoed when the input is a terminal.
func NewTerminalPrompter(saveTo string) *Prompter {
	res := NewPrompter(os.Stdin, os.Stderr, saveTo)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		res.readPassword = func() (string, error) {
			bs, err := term.ReadPassword(fd)
			fmt.Fprintln(res.Out)
			return string(bs), err
		}
	}
	return res
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) credentials() (Credentials, error) {
	var res Credentials
	var err error

	fmt.Fprintln(p.Out, "Please enter your JGI credentials:")
	if res.User, err = p.ask("Username: "); err != nil {
		return res, err
	}

	if p.readPassword == nil {
		res.Password, err = p.ask("Password: ")
	} else {
		fmt.Fprint(p.Out, "Password: ")
		res.Password, err = p.readPassword()
		res.Password = strings.TrimSpace(res.Password)
	}
	if err != nil {
		return res, err
	}
	if !res.valid() {
		return res, errors.New("empty user name or password")
	}

	if p.SaveTo == "" {
		return res, nil
	}
	answer, err := p.ask("\nSave credentials to config file for future use? (yes/no): ")
	if err != nil {
		return res, nil
	}
	answer = strings.ToLower(answer)
	if answer == "yes" || answer == "y" {
		if err = SaveCredentials(p.SaveTo, res); err != nil {
			slog.Warn("Cannot save credentials", "path", p.SaveTo, "error", err)
			return res, nil
		}
		gn.Info("Credentials saved to <em>%s</em>", p.SaveTo)
	}
	return res, nil
}

// LoadCredentials finds JGI credentials. Environment variables win over
// the credentials file, the prompter is used when neither has them. The
// prompter may be nil for non-interactive runs.
func LoadCredentials(path string, p *Prompter) (Credentials, error) {
	res := Credentials{
		User:     strings.TrimSpace(os.Getenv(EnvUser)),
		Password: strings.TrimSpace(os.Getenv(EnvPassword)),
	}
	if res.valid() {
		slog.Info("Using JGI credentials from environment variables")
		return res, nil
	}

	if path != "" {
		cr, err := readCredentials(path)
		switch {
		case err == nil:
			slog.Info("Using JGI credentials from file", "path", path)
			return cr, nil
		case !errors.Is(err, os.ErrNotExist):
			gn.Warn("Invalid credentials file <em>%s</em>", path)
		}
	}

	if p == nil {
		return res, CredentialsError(errors.New("no credentials and no prompt"))
	}
	res, err := p.credentials()
	if err != nil {
		return res, CredentialsError(err)
	}
	return res, nil
}

// readCredentials reads user name and password from the first two lines
// of a file.
func readCredentials(path string) (Credentials, error) {
	var res Credentials
	bs, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	lines := strings.Split(string(bs), "\n")
	if len(lines) < 2 {
		return res, errors.New("credentials file needs 2 lines")
	}
	res.User = strings.TrimSpace(lines[0])
	res.Password = strings.TrimSpace(lines[1])
	if !res.valid() {
		return res, errors.New("empty user name or password")
	}
	return res, nil
}

// SaveCredentials writes credentials readable only by the owner.
func SaveCredentials(path string, c Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data := c.User + "\n" + c.Password + "\n"
	return os.WriteFile(path, []byte(data), 0600)
}
