// Command encode-key prints a Firebase service account JSON file as the
// base64 string expected in CARECAMP_IDENTITY_SERVICE_ACCOUNT_KEY.
package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// serviceAccount holds the fields checked before encoding.
type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
}

func main() {
	path := flag.String("file", "", "path to the service account JSON key (reads stdin when empty)")
	flag.Parse()

	if err := run(*path, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "encode-key: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, stdin io.Reader, out io.Writer) error {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	encoded, err := encodeKey(raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, encoded)
	return err
}

// encodeKey checks that raw looks like a service account key and returns it
// base64-encoded with standard padding.
func encodeKey(raw []byte) (string, error) {
	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return "", fmt.Errorf("key is not valid JSON: %w", err)
	}
	if sa.Type != "service_account" {
		return "", errors.New(`key "type" must be "service_account"`)
	}
	if sa.ProjectID == "" || sa.PrivateKey == "" || sa.ClientEmail == "" {
		return "", errors.New("key must contain project_id, private_key and client_email")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
