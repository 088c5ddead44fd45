package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/inledit/pkg/field"
	"github.com/pluqqy/inledit/pkg/models"
)

const (
	ProjectDir   = ".inledit"
	FieldsFile   = "fields.yaml"
	ValuesFile   = "values.yaml"
	SettingsFile = "settings.yaml"
)

var (
	// ErrUnknownField is returned when a key has no definition in fields.yaml
	ErrUnknownField = errors.New("unknown field")

	// ErrRejected is returned by Save when the reject rule refuses a value
	ErrRejected = errors.New("value rejected by store")
)

// Store persists field definitions, committed values and settings under a project dir
type Store struct {
	root   string
	mu     sync.Mutex
	reject *regexp.Regexp
	now    func() time.Time
}

// Open returns a store rooted at dir (usually ProjectDir)
func Open(dir string) *Store {
	return &Store{
		root: dir,
		now:  time.Now,
	}
}

// Root returns the project directory
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether the project directory has been initialized
func (s *Store) Exists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// InitProjectStructure creates the project directory with sample fields and default
// settings. Existing files are left untouched.
func (s *Store) InitProjectStructure() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.root, err)
	}

	if _, err := os.Stat(s.path(FieldsFile)); os.IsNotExist(err) {
		if err := s.WriteFields(models.DefaultFieldSet()); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.path(SettingsFile)); os.IsNotExist(err) {
		if err := s.WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}
	return nil
}

// SetRejectPattern installs a rule that makes Save refuse matching values.
// An empty pattern removes the rule.
func (s *Store) SetRejectPattern(pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pattern == "" {
		s.reject = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid reject pattern %q: %w", pattern, err)
	}
	s.reject = re
	return nil
}

// ReadFields loads and validates fields.yaml
func (s *Store) ReadFields() (*models.FieldSet, error) {
	var set models.FieldSet
	found, err := s.readYAML(FieldsFile, &set)
	if err != nil {
		return nil, err
	}
	if !found {
		return &models.FieldSet{}, nil
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FieldsFile, err)
	}
	return &set, nil
}

// WriteFields saves the field definitions
func (s *Store) WriteFields(set *models.FieldSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	return s.writeYAML(FieldsFile, set)
}

// ReadValues loads the committed values. A missing file reads as an empty record.
func (s *Store) ReadValues() (*models.Record, error) {
	record := models.NewRecord()
	if _, err := s.readYAML(ValuesFile, record); err != nil {
		return nil, err
	}
	if record.Values == nil {
		record.Values = map[string]string{}
	}
	return record, nil
}

// Get returns the committed value for key
func (s *Store) Get(key string) (value string, ok bool, err error) {
	record, err := s.ReadValues()
	if err != nil {
		return "", false, err
	}
	value, ok = record.Values[key]
	return value, ok, nil
}

// Save commits value for key. Values are trimmed like the initial text of a field;
// empty values remove the key.
func (s *Store) Save(key, value string) error {
	value = strings.TrimSpace(value)

	fields, err := s.ReadFields()
	if err != nil {
		return err
	}
	if _, ok := fields.Find(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reject != nil && s.reject.MatchString(value) {
		return fmt.Errorf("%w: %q matches %s", ErrRejected, value, s.reject)
	}

	record, err := s.ReadValues()
	if err != nil {
		return err
	}

	if value == "" {
		delete(record.Values, key)
	} else {
		record.Values[key] = value
	}
	record.UpdatedAt = s.now().UTC()

	return s.WriteValues(record)
}

// WriteValues replaces values.yaml with record
func (s *Store) WriteValues(record *models.Record) error {
	if record == nil {
		record = models.NewRecord()
	}
	return s.writeYAML(ValuesFile, record)
}

// ReadSettings loads settings.yaml, falling back to defaults when it does not exist
func (s *Store) ReadSettings() (*models.Settings, error) {
	settings := models.DefaultSettings()
	if _, err := s.readYAML(SettingsFile, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// WriteSettings saves settings.yaml
func (s *Store) WriteSettings(settings *models.Settings) error {
	return s.writeYAML(SettingsFile, settings)
}

// Committer returns a synchronous commit capability that saves into key
func (s *Store) Committer(key string) field.Committer {
	return field.CommitFunc(func(value string, accept func(), reject func(error)) {
		if err := s.Save(key, value); err != nil {
			reject(err)
			return
		}
		accept()
	})
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *Store) readYAML(name string, out interface{}) (bool, error) {
	content, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(content, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

// writeYAML replaces the file atomically via a temp file in the same directory
func (s *Store) writeYAML(name string, in interface{}) error {
	content, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.root, err)
	}

	tmp, err := os.CreateTemp(s.root, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
