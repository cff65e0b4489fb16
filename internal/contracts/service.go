package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"docustamp/contract-portal-backend/internal/catalog"
	"docustamp/contract-portal-backend/internal/stamp"
	"docustamp/contract-portal-backend/pkg/storage"
)

const (
	contractPrefix = "contracts/"
	// Fixed-width, ascending-sortable timestamp: the lexicographically
	// greatest key under a customer prefix is the newest document.
	storageKeyTimeLayout = "20060102150405"
)

// ErrNoDocuments is returned when a customer has no stored documents.
var ErrNoDocuments = errors.New("contracts: no documents for customer")

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedDocument, error)
	Latest(ctx context.Context, customerID string) ([]byte, error)
	Archive(ctx context.Context, customerID string) ([]byte, error)
	History(ctx context.Context, customerID string) ([]ContractRecord, error)
}

type contractService struct {
	catalog *catalog.Catalog
	store   storage.BlobStore
	repo    Repository // nil when the audit log is disabled
	binder  *stamp.Binder
	logger  *slog.Logger
}

func NewService(cat *catalog.Catalog, store storage.BlobStore, repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &contractService{
		catalog: cat,
		store:   store,
		repo:    repo,
		binder:  stamp.NewBinder(cat),
		logger:  logger,
	}
}

// Generate runs the stamping pipeline: per template, resolve spec and
// source, bind fields, stamp; then assemble the parts in request order,
// persist the merged document, and return it. Any resolution failure
// aborts the whole request; nothing partial is returned or persisted.
// Persistence is a hard precondition of success: a failed upload fails the
// request even though the document was already assembled.
func (s *contractService) Generate(ctx context.Context, req GenerateRequest) (doc *GeneratedDocument, err error) {
	if s.store == nil || !s.catalog.Ready() {
		return nil, catalog.ErrNotReady
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generation pipeline panicked", "panic", r)
			doc, err = nil, fmt.Errorf("contracts: generating document: %v", r)
		}
	}()

	req.Context.Normalize(s.logger)

	parts := make([][]byte, 0, len(req.TemplateNames))
	for _, name := range req.TemplateNames {
		byPage, err := s.binder.Bind(name, req.Context)
		if err != nil {
			return nil, err
		}
		template, err := s.catalog.Template(name)
		if err != nil {
			return nil, err
		}
		stamped, err := stamp.Stamp(template, byPage)
		if err != nil {
			return nil, fmt.Errorf("contracts: stamping %q: %w", name, err)
		}
		parts = append(parts, stamped)
	}

	merged, err := stamp.Assemble(parts)
	if err != nil {
		return nil, err
	}

	customerID := req.Context.CustomerID()
	key := fmt.Sprintf("%s%s_%s.pdf", contractPrefix, customerID, time.Now().Format(storageKeyTimeLayout))
	if err := s.store.Upload(ctx, key, bytes.NewReader(merged), "application/pdf"); err != nil {
		return nil, fmt.Errorf("contracts: storing %s: %w", key, err)
	}
	s.logger.Info("stored generated document", "key", key, "bytes", len(merged))

	pages, err := stamp.PageCount(merged)
	if err != nil {
		pages = 0
	}
	s.record(ctx, customerID, key, req.TemplateNames, pages, len(merged))

	return &GeneratedDocument{Bytes: merged, StorageKey: key, PageCount: pages}, nil
}

// record writes the audit row. The audit log is a supplement to blob
// storage, not the source of truth, so a failed insert is logged and does
// not fail an already-persisted document.
func (s *contractService) record(ctx context.Context, customerID, key string, templates []string, pages, size int) {
	if s.repo == nil {
		return
	}
	names, err := json.Marshal(templates)
	if err != nil {
		names = []byte("[]")
	}
	rec := &ContractRecord{
		ID:            uuid.New(),
		CustomerID:    customerID,
		StorageKey:    key,
		TemplateNames: names,
		PageCount:     pages,
		ByteSize:      size,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		s.logger.Error("recording generated document failed", "key", key, "error", err)
	}
}

// Latest returns the most recently stored document for a customer. Keys
// embed a fixed-width timestamp, so the lexicographically greatest key
// under the prefix is the latest.
func (s *contractService) Latest(ctx context.Context, customerID string) ([]byte, error) {
	keys, err := s.customerKeys(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.store.Download(ctx, keys[len(keys)-1])
}

// Archive packages every stored document for a customer into a zip keyed
// by base file name.
func (s *contractService) Archive(ctx context.Context, customerID string) ([]byte, error) {
	keys, err := s.customerKeys(ctx, customerID)
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(keys))
	for _, key := range keys {
		data, err := s.store.Download(ctx, key)
		if err != nil {
			return nil, err
		}
		files[path.Base(key)] = data
	}
	return buildArchive(files)
}

func (s *contractService) History(ctx context.Context, customerID string) ([]ContractRecord, error) {
	if s.repo == nil {
		return []ContractRecord{}, nil
	}
	return s.repo.ListRecords(ctx, customerID)
}

func (s *contractService) customerKeys(ctx context.Context, customerID string) ([]string, error) {
	if s.store == nil {
		return nil, catalog.ErrNotReady
	}
	keys, err := s.store.List(ctx, contractPrefix+customerID+"_")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, customerID)
	}
	return keys, nil
}
