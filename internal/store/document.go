package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"tusk/internal/models"
)

// documentVersion is the layout written by Save. Documents without a
// version key are read as the pre-versioned layout (see decodeLegacy).
const documentVersion = 1

type document struct {
	Version  int              `json:"version" yaml:"version"`
	Accounts []models.Account `json:"accounts" yaml:"accounts"`
}

// legacyAccount is the layout written before ids were stored: a map keyed
// by account name, with task ids implied by position.
type legacyAccount struct {
	Name        string                   `json:"name" yaml:"name"`
	Tasks       []legacyTask             `json:"tasks" yaml:"tasks"`
	Subaccounts map[string]legacyAccount `json:"subaccounts" yaml:"subaccounts"`
}

type legacyTask struct {
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// codec is a self-describing serialization format for a document.
type codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func codecFor(format string) (codec, error) {
	switch format {
	case BackendJSON:
		return jsonCodec{}, nil
	case BackendYAML:
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported file format %q", format)
	}
}

func newDocument(accounts []models.Account) document {
	doc := document{Version: documentVersion, Accounts: make([]models.Account, 0, len(accounts))}
	for i := range accounts {
		doc.Accounts = append(doc.Accounts, accounts[i].Clone())
	}
	sort.Slice(doc.Accounts, func(i, j int) bool {
		return doc.Accounts[i].Name < doc.Accounts[j].Name
	})
	return doc
}

// decodeDocument parses data in either the versioned or the legacy layout
// and checks the result.
func decodeDocument(c codec, data []byte) ([]models.Account, error) {
	var probe struct {
		Version *int `json:"version" yaml:"version"`
	}
	if err := c.Unmarshal(data, &probe); err == nil && probe.Version != nil {
		return decodeVersioned(c, data, *probe.Version)
	}
	return decodeLegacy(c, data)
}

func decodeVersioned(c codec, data []byte, version int) ([]models.Account, error) {
	if version < 1 || version > documentVersion {
		return nil, fmt.Errorf("unsupported document version %d (this build reads up to %d)", version, documentVersion)
	}

	var doc document
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	return checkAccounts(doc.Accounts)
}

func decodeLegacy(c codec, data []byte) ([]models.Account, error) {
	var legacy map[string]legacyAccount
	if err := c.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	names := make([]string, 0, len(legacy))
	for name := range legacy {
		names = append(names, name)
	}
	sort.Strings(names)

	accounts := make([]models.Account, 0, len(names))
	for _, name := range names {
		account := models.NewAccount(name)
		for _, task := range legacy[name].Tasks {
			account.AddTask(task.Description)
			account.Tasks[len(account.Tasks)-1].Completed = task.Completed
		}
		accounts = append(accounts, *account)
	}

	return checkAccounts(accounts)
}

// checkAccounts validates every account and rejects duplicate names.
func checkAccounts(accounts []models.Account) ([]models.Account, error) {
	seen := make(map[string]struct{}, len(accounts))
	out := make([]models.Account, 0, len(accounts))

	for i := range accounts {
		account := accounts[i].Clone()
		if err := account.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[account.Name]; dup {
			return nil, fmt.Errorf("duplicate account %q", account.Name)
		}
		seen[account.Name] = struct{}{}
		out = append(out, account)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
