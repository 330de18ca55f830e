package catalog

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
)

// ImageStore uploads item photos and returns their public URLs.
type ImageStore interface {
	Upload(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
}

type Service struct {
	repo   Repository
	loader *Loader
	images ImageStore
}

func NewService(repo Repository, loader *Loader, images ImageStore) *Service {
	return &Service{repo: repo, loader: loader, images: images}
}

// GetItemOptions loads a menu item and its fully decoded option data.
// The structured fetch from the item's source URL is attempted first;
// the record's own base price, sizes and flavours feed the fallback
// synthesis when it yields nothing. The options are never nil.
func (s *Service) GetItemOptions(ctx context.Context, slug string) (*MenuItem, *ItemOptions, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	opts := s.loader.Load(ctx, item.SourceURL, &Snapshot{
		Sizes:     item.Sizes,
		Flavours:  item.Flavours,
		BasePrice: item.BasePrice,
	})

	if len(opts.Images) == 0 && len(item.Images) > 0 {
		// The loader shares cached options across requests; patch a
		// copy, never the cached instance.
		patched := *opts
		patched.Images = item.Images
		opts = &patched
	}
	return item, opts, nil
}

func (s *Service) ListItems(ctx context.Context) ([]MenuItem, error) {
	return s.repo.List(ctx)
}

// UpsertItem saves a menu item record and drops any cached options for
// it so the next expansion sees the edit.
func (s *Service) UpsertItem(ctx context.Context, item *MenuItem) error {
	if item.Slug == "" || item.Name == "" {
		return errors.New("slug and name are required")
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return err
	}
	s.loader.Invalidate(item.SourceURL)
	return nil
}

// AddItemImage uploads one photo for an item and appends its public
// URL to the item's image list.
func (s *Service) AddItemImage(
	ctx context.Context,
	slug string,
	file *multipart.FileHeader,
) (string, error) {

	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("items/%s/%s", slug, file.Filename)
	url, err := s.images.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.SaveImages(ctx, slug, append(item.Images, url)); err != nil {
		return "", err
	}

	s.loader.Invalidate(item.SourceURL)
	return url, nil
}
