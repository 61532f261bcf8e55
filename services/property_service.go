package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/UShishir5355t/real-estate-mvp/cache"
	"github.com/UShishir5355t/real-estate-mvp/events"
	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
	"github.com/UShishir5355t/real-estate-mvp/search"
	"github.com/UShishir5355t/real-estate-mvp/storage"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

const imagePrefix = "properties"

// ImageOutcome records one best-effort blob deletion.
type ImageOutcome struct {
	URL     string `json:"url"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// CleanupReport lists what happened to each image of a deleted listing.
// Failures here never fail the delete itself; the blobs are left orphaned.
type CleanupReport struct {
	PropertyID string         `json:"propertyId"`
	Images     []ImageOutcome `json:"images"`
}

func (r CleanupReport) Failed() []ImageOutcome {
	var failed []ImageOutcome
	for _, o := range r.Images {
		if !o.Deleted {
			failed = append(failed, o)
		}
	}
	return failed
}

type PropertyService interface {
	CreateProperty(ctx context.Context, input models.PropertyInput, images []storage.File) (*models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	// ListProperties returns every listing, newest first, for the admin panel.
	ListProperties(ctx context.Context) ([]models.Property, error)
	// ListAvailable returns available listings matching filters, newest first.
	ListAvailable(ctx context.Context, filters models.SearchFilters) ([]models.Property, error)
	UpdateProperty(ctx context.Context, id string, update models.PropertyUpdate, newImages []storage.File) (*models.Property, error)
	DeleteProperty(ctx context.Context, id string) (*CleanupReport, error)
	DeleteImageFromProperty(ctx context.Context, id, imageURL string) (*ImageOutcome, error)
}

type propertyService struct {
	properties repositories.PropertyRepository
	blobs      storage.BlobStore
	cache      cache.ListingCache
	events     events.Publisher
}

func NewPropertyService(
	properties repositories.PropertyRepository,
	blobs storage.BlobStore,
	listingCache cache.ListingCache,
	publisher events.Publisher,
) PropertyService {
	if listingCache == nil {
		listingCache = cache.Nop{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &propertyService{
		properties: properties,
		blobs:      blobs,
		cache:      listingCache,
		events:     publisher,
	}
}

// ------------------------------------------------------------------
// Reads
// ------------------------------------------------------------------

func (s *propertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return s.properties.GetByID(ctx, id)
}

func (s *propertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.properties.List(ctx, repositories.ListQuery{})
}

func (s *propertyService) ListAvailable(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	q := repositories.ListQuery{
		Status:       models.StatusAvailable,
		PropertyType: filters.PropertyType,
		PriceType:    filters.TransactionType,
	}
	key := cache.QueryKey(cache.ListingsPrefix, map[string]string{
		"status":       string(q.Status),
		"propertyType": string(q.PropertyType),
		"priceType":    string(q.PriceType),
	})

	properties, gen, ok := s.cache.Get(ctx, key)
	if !ok {
		var err error
		properties, err = s.properties.List(ctx, q)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, gen, properties)
	}
	return search.ApplyFilters(properties, filters), nil
}

// ------------------------------------------------------------------
// Writes
// ------------------------------------------------------------------

func (s *propertyService) CreateProperty(ctx context.Context, input models.PropertyInput, images []storage.File) (*models.Property, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// 1) every upload must finish before the document is written
	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	// 2) document with the resolved URL list
	property := input.ToProperty(urls)
	if err := s.properties.Create(ctx, &property); err != nil {
		s.discardUploads(ctx, urls)
		return nil, err
	}

	utils.Logger.WithFields(logrus.Fields{
		"property_id": property.ID,
		"images":      len(urls),
	}).Info("property created")
	s.changed(ctx, events.ActionCreate, property.ID)
	return &property, nil
}

// UpdateProperty applies update and appends any new images to the stored
// list. The read-then-append is not atomic: two concurrent updates that both
// add images can lose one side's URLs.
func (s *propertyService) UpdateProperty(ctx context.Context, id string, update models.PropertyUpdate, newImages []storage.File) (*models.Property, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	fields := update.Fields()
	if len(newImages) > 0 {
		urls, err := s.uploadImages(ctx, newImages)
		if err != nil {
			return nil, err
		}
		existing, err := s.properties.GetByID(ctx, id)
		if err != nil {
			s.discardUploads(ctx, urls)
			return nil, err
		}

		fields["images"] = append(append(make([]string, 0, len(existing.Images)+len(urls)), existing.Images...), urls...)
		if err := s.properties.Update(ctx, id, fields); err != nil {
			s.discardUploads(ctx, urls)
			return nil, err
		}
	} else if err := s.properties.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	s.changed(ctx, events.ActionUpdate, id)
	return s.properties.GetByID(ctx, id)
}

func (s *propertyService) DeleteProperty(ctx context.Context, id string) (*CleanupReport, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{
		PropertyID: id,
		Images:     s.deleteBlobs(ctx, property.Images),
	}
	for _, o := range report.Failed() {
		utils.Logger.WithFields(logrus.Fields{
			"property_id": id,
			"url":         o.URL,
			"error":       o.Error,
		}).Warn("image left in storage after property delete")
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		return report, err
	}

	utils.Logger.WithField("property_id", id).Info("property deleted")
	s.changed(ctx, events.ActionDelete, id)
	return report, nil
}

func (s *propertyService) DeleteImageFromProperty(ctx context.Context, id, imageURL string) (*ImageOutcome, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(property.Images))
	for _, u := range property.Images {
		if u != imageURL {
			remaining = append(remaining, u)
		}
	}
	if err := s.properties.Update(ctx, id, map[string]interface{}{"images": remaining}); err != nil {
		return nil, err
	}
	s.changed(ctx, events.ActionUpdate, id)

	outcome := s.deleteBlobs(ctx, []string{imageURL})[0]
	if !outcome.Deleted {
		utils.Logger.WithFields(logrus.Fields{
			"property_id": id,
			"url":         imageURL,
			"error":       outcome.Error,
		}).Warn("image left in storage after removal from property")
	}
	return &outcome, nil
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

// uploadImages uploads files in parallel and returns their URLs in input
// order. If any upload fails the ones that succeeded are removed again.
func (s *propertyService) uploadImages(ctx context.Context, files []storage.File) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.blobs.Upload(gctx, storage.ObjectPath(imagePrefix, f.Name), f.ContentType, f.Body)
			if err != nil {
				return fmt.Errorf("upload image %q: %w", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discardUploads(ctx, urls)
		return nil, err
	}
	return urls, nil
}

func (s *propertyService) discardUploads(ctx context.Context, urls []string) {
	var uploaded []string
	for _, u := range urls {
		if u != "" {
			uploaded = append(uploaded, u)
		}
	}
	for _, o := range s.deleteBlobs(ctx, uploaded) {
		if !o.Deleted {
			utils.Logger.WithFields(logrus.Fields{
				"url":   o.URL,
				"error": o.Error,
			}).Warn("orphaned upload could not be removed")
		}
	}
}

// deleteBlobs deletes each URL independently and reports every outcome in
// input order.
func (s *propertyService) deleteBlobs(ctx context.Context, urls []string) []ImageOutcome {
	outcomes := make([]ImageOutcome, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			outcomes[i] = ImageOutcome{URL: u, Deleted: true}
			if err := s.blobs.Delete(ctx, u); err != nil {
				outcomes[i] = ImageOutcome{URL: u, Error: err.Error()}
			}
		}(i, u)
	}
	wg.Wait()
	return outcomes
}

func (s *propertyService) changed(ctx context.Context, action, id string) {
	s.cache.Invalidate(ctx)
	if err := s.events.PublishProperty(ctx, action, id); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"property_id": id,
			"action":      action,
		}).Warn("property event not published")
	}
}
