package storage

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-storefront/models"

	"gopkg.in/yaml.v3"
)

// Seed is the initial catalog and settings loaded from a YAML file.
type Seed struct {
	Settings *models.Settings `yaml:"settings"`
	Products []models.Product `yaml:"products"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (*Seed, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	seed := &Seed{}
	if err := yaml.Unmarshal(file, seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return seed, nil
}

// Validate rejects seed products that share an explicit id.
func (seed *Seed) Validate() error {
	seen := make(map[int]bool, len(seed.Products))
	for _, p := range seed.Products {
		if p.ID == 0 {
			continue
		}
		if seen[p.ID] {
			return fmt.Errorf("seed: duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Apply installs the seed settings if none are stored and the seed products
// if the catalog is empty. Products without an id are numbered after the
// highest id in the seed.
func (seed *Seed) Apply(ctx context.Context, s *Shared) error {
	if err := seed.Validate(); err != nil {
		return err
	}
	if seed.Settings != nil {
		stored, err := s.hasKey(ctx, KeySettings)
		if err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		if !stored {
			if err := s.SetSettings(ctx, *seed.Settings); err != nil {
				return fmt.Errorf("seed settings: %w", err)
			}
			log.Println("Seeded store settings")
		}
	}
	if len(seed.Products) == 0 {
		return nil
	}
	existing, err := s.productsForWrite(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	products := make([]models.Product, len(seed.Products))
	copy(products, seed.Products)
	next := models.NextProductID(products)
	for i := range products {
		if products[i].ID == 0 {
			products[i].ID = next
			next++
		}
	}
	if err := s.SetProducts(ctx, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	log.Printf("Seeded %d products", len(products))
	return nil
}
