package command

import (
	"fmt"
	"os"

	"github.com/duskhaven/go-dusk/internal/region"
	"github.com/duskhaven/go-dusk/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Regions AssetConfig[*region.Region] `json:"regions"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Regions.Validate("regions"))
	return el.Err()
}

// BuildRegions loads the region definitions the darkness engine runs against.
func (c *StorageConfig) BuildRegions() (map[string]*region.Region, error) {
	store, err := c.Regions.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating region store: %w", err)
	}

	return store.GetAll(), nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
