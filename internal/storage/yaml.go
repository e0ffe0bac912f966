package storage

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bmk-dev/bmk/internal/model"
)

// yamlRecord is one entry of the YAML file, keyed by bookmark name:
//
//	gh:
//	  url: https://github.com
//	  desc: The place for code
//	  tags: [dev]
type yamlRecord struct {
	URL  string   `yaml:"url"`
	Desc string   `yaml:"desc,omitempty"`
	Tags []string `yaml:"tags,omitempty"`
}

// YAMLStorage implements Storage using a human-editable YAML file.
type YAMLStorage struct {
	path string
}

// NewYAMLStorage creates a new YAMLStorage with the given file path.
func NewYAMLStorage(path string) *YAMLStorage {
	return &YAMLStorage{path: path}
}

// Path returns the storage file path.
func (s *YAMLStorage) Path() string {
	return s.path
}

// Load reads the store from the YAML file.
// Returns an empty store if the file doesn't exist.
func (s *YAMLStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	// yaml.v3 rejects repeated mapping keys, so duplicate names surface here.
	var records map[string]yamlRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, s.path, err)
	}

	store := model.NewStore()
	for name, r := range records {
		store.Bookmarks = append(store.Bookmarks, model.Bookmark{
			Name: name,
			URL:  r.URL,
			Desc: r.Desc,
			Tags: model.NormalizeTags(r.Tags),
		})
	}
	store.Bookmarks = store.Sorted()

	if err := validate(s.path, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Save writes the store to the YAML file.
// Creates the directory if it doesn't exist.
func (s *YAMLStorage) Save(store *model.Store) error {
	records := make(map[string]yamlRecord, len(store.Bookmarks))
	for _, b := range store.Bookmarks {
		records[b.Name] = yamlRecord{
			URL:  b.URL,
			Desc: b.Desc,
			Tags: b.Tags,
		}
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
