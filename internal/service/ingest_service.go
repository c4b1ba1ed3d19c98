package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"beanvault/internal/config"
	"beanvault/internal/domain"
	"beanvault/internal/extract"
	"beanvault/internal/parser"
	"beanvault/internal/port"
)

// allowedUploadTypes are the content types accepted for price list uploads.
// Uploads carry pre-extracted text; PDF extraction happens upstream.
var allowedUploadTypes = map[string]bool{
	"text/plain":    true,
	"text/markdown": true,
	"text/csv":      true,
}

// UploadPriceListInput is the DTO for price list uploads.
type UploadPriceListInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	PageCount   int
	Body        io.Reader
}

// IngestService turns uploaded price lists into catalog rows.
type IngestService interface {
	Upload(ctx context.Context, input UploadPriceListInput) (*domain.PriceList, error)
	GetPriceList(ctx context.Context, id uuid.UUID) (*domain.PriceList, error)
	ListPriceLists(ctx context.Context, page, pageSize int) ([]domain.PriceList, int, int, int, error)
	// ParsePriceList runs one parse attempt for a claimed price list and
	// records the outcome. It never returns an error; failures land on the
	// queue row.
	ParsePriceList(ctx context.Context, pl *domain.PriceList, maxAttempts int)
	// IngestText parses already-extracted text and persists the result,
	// bypassing the queue. Used by the batch CLI.
	IngestText(ctx context.Context, provider string, beanType domain.BeanType, year, month int, text string, pageCount int) (*IngestResult, error)
}

// IngestResult summarizes one successful ingestion.
type IngestResult struct {
	BeanCount int            `json:"bean_count"`
	PageCount int            `json:"page_count"`
	ModelUsed string         `json:"model_used"`
	Pages     []extract.Page `json:"-"`
}

type ingestService struct {
	priceListRepo port.PriceListRepository
	beanRepo      port.BeanRepository
	latestRepo    port.LatestDataRepository
	beanService   BeanService
	parser        port.PriceListParser
	storage       port.ObjectStorage
	emailSender   port.EmailSender
	s3Cfg         config.S3Config
	notifyAddress string
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(
	priceListRepo port.PriceListRepository,
	beanRepo port.BeanRepository,
	latestRepo port.LatestDataRepository,
	beanService BeanService,
	priceListParser port.PriceListParser,
	storage port.ObjectStorage,
	emailSender port.EmailSender,
	s3Cfg config.S3Config,
	notifyAddress string,
) IngestService {
	return &ingestService{
		priceListRepo: priceListRepo,
		beanRepo:      beanRepo,
		latestRepo:    latestRepo,
		beanService:   beanService,
		parser:        priceListParser,
		storage:       storage,
		emailSender:   emailSender,
		s3Cfg:         s3Cfg,
		notifyAddress: notifyAddress,
	}
}

// ParseFilename splits a price list file name into provider, tier and period.
// Accepted forms: "<provider>_<YYYYMM>", "<provider>_common_<YYYYMM>",
// "<provider>_premium_<YYYYMM>". The tier defaults to common.
func ParseFilename(name string) (string, domain.BeanType, int, int, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return "", "", 0, 0, domain.ErrInvalidFileName
	}

	period := parts[len(parts)-1]
	if len(period) != 6 {
		return "", "", 0, 0, domain.ErrInvalidFileName
	}
	year, err := strconv.Atoi(period[:4])
	if err != nil {
		return "", "", 0, 0, domain.ErrInvalidFileName
	}
	month, err := strconv.Atoi(period[4:])
	if err != nil || month < 1 || month > 12 {
		return "", "", 0, 0, domain.ErrInvalidFileName
	}

	beanType := domain.BeanTypeCommon
	providerParts := parts[:len(parts)-1]
	switch providerParts[len(providerParts)-1] {
	case string(domain.BeanTypePremium):
		beanType = domain.BeanTypePremium
		providerParts = providerParts[:len(providerParts)-1]
	case string(domain.BeanTypeCommon):
		providerParts = providerParts[:len(providerParts)-1]
	}

	provider := strings.Join(providerParts, "_")
	if provider == "" {
		return "", "", 0, 0, domain.ErrInvalidFileName
	}
	return provider, beanType, year, month, nil
}

func (s *ingestService) Upload(ctx context.Context, input UploadPriceListInput) (*domain.PriceList, error) {
	if !allowedUploadTypes[input.ContentType] {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.SizeBytes > s.s3Cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	provider, beanType, year, month, err := ParseFilename(input.FileName)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := fmt.Sprintf("price-lists/%s/%d%02d/%s_%s", provider, year, month, id, input.FileName)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("ingestService.Upload: %w", domain.ErrUploadFailed)
	}

	pl := &domain.PriceList{
		ID:          id,
		Provider:    provider,
		BeanType:    beanType,
		DataYear:    year,
		DataMonth:   month,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		S3Bucket:    s.s3Cfg.Bucket,
		S3Key:       key,
		PageCount:   input.PageCount,
		Status:      domain.ParseStatusQueued,
	}
	if err := s.priceListRepo.Create(ctx, pl); err != nil {
		return nil, fmt.Errorf("ingestService.Upload: %w", err)
	}
	return pl, nil
}

func (s *ingestService) GetPriceList(ctx context.Context, id uuid.UUID) (*domain.PriceList, error) {
	return s.priceListRepo.GetByID(ctx, id)
}

func (s *ingestService) ListPriceLists(ctx context.Context, page, pageSize int) ([]domain.PriceList, int, int, int, error) {
	page, pageSize = domain.NormalizePagination(page, pageSize)
	lists, total, err := s.priceListRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("ingestService.ListPriceLists: %w", err)
	}
	if lists == nil {
		lists = []domain.PriceList{}
	}
	return lists, total, page, pageSize, nil
}

func (s *ingestService) ParsePriceList(ctx context.Context, pl *domain.PriceList, maxAttempts int) {
	data, err := s.storage.Download(ctx, pl.S3Bucket, pl.S3Key)
	if err != nil {
		s.failParse(ctx, pl, fmt.Errorf("downloading price list: %w", err), maxAttempts)
		return
	}

	result, err := s.IngestText(ctx, pl.Provider, pl.BeanType, pl.DataYear, pl.DataMonth, string(data), pl.PageCount)
	if err != nil {
		s.failParse(ctx, pl, err, maxAttempts)
		return
	}

	if err := s.priceListRepo.MarkCompleted(ctx, pl.ID, result.ModelUsed, result.BeanCount); err != nil {
		log.Printf("ingestService.ParsePriceList: MarkCompleted %s: %v", pl.ID, err)
		return
	}
	log.Printf("ingestService.ParsePriceList: price list %s parsed (%d beans)", pl.ID, result.BeanCount)
}

func (s *ingestService) IngestText(ctx context.Context, provider string, beanType domain.BeanType, year, month int, text string, pageCount int) (*IngestResult, error) {
	out, err := s.parser.Parse(ctx, port.ParseInput{Text: text, PageCount: pageCount})
	if err != nil {
		return nil, fmt.Errorf("parsing price list: %w", err)
	}

	beans := beansFromPages(out.Pages, beanType)
	if len(beans) == 0 {
		return nil, fmt.Errorf("no beans extracted (raw length %d)", out.Diagnostic.RawLength)
	}

	if err := s.beanRepo.ReplaceForPeriod(ctx, provider, beanType, year, month, beans); err != nil {
		return nil, fmt.Errorf("storing beans: %w", err)
	}
	if err := s.latestRepo.Upsert(ctx, provider, year, month); err != nil {
		return nil, fmt.Errorf("updating latest period: %w", err)
	}
	s.beanService.InvalidateLatest(provider)

	return &IngestResult{
		BeanCount: len(beans),
		PageCount: len(out.Pages),
		ModelUsed: out.ModelUsed,
		Pages:     out.Pages,
	}, nil
}

func (s *ingestService) failParse(ctx context.Context, pl *domain.PriceList, parseErr error, maxAttempts int) {
	terminal := pl.ParseAttempts >= maxAttempts

	// Rate limits are a transport condition, not a bad document. Keep the
	// row queued so a later dispatch can try again.
	var rlErr *parser.RateLimitError
	if errors.As(parseErr, &rlErr) {
		terminal = false
	}

	errMsg := parseErr.Error()
	if err := s.priceListRepo.MarkFailed(ctx, pl.ID, errMsg, terminal); err != nil {
		log.Printf("ingestService.failParse: MarkFailed %s: %v", pl.ID, err)
		return
	}
	log.Printf("ingestService.failParse: price list %s attempt %d failed (terminal=%v): %s",
		pl.ID, pl.ParseAttempts, terminal, errMsg)

	if terminal && s.emailSender != nil && s.notifyAddress != "" {
		notice := port.ParseFailureNotice{
			Provider:  pl.Provider,
			FileName:  pl.FileName,
			Attempts:  pl.ParseAttempts,
			LastError: errMsg,
		}
		if err := s.emailSender.SendParseFailure(ctx, s.notifyAddress, notice); err != nil {
			log.Printf("ingestService.failParse: notification for %s: %v", pl.ID, err)
		}
	}
}

// beansFromPages flattens normalized pages into catalog rows. price_per_pkg
// stays untouched by normalization, so only genuinely numeric values survive
// the crossing into typed storage.
func beansFromPages(pages []extract.Page, beanType domain.BeanType) []domain.CoffeeBean {
	var beans []domain.CoffeeBean
	for _, page := range pages {
		for _, rec := range page.Items {
			bean := domain.CoffeeBean{
				Type:             beanType,
				Code:             recString(rec, "code"),
				Name:             recString(rec, "name"),
				Country:          recString(rec, "country"),
				FlavorProfile:    recString(rec, "flavor_profile"),
				SoldOut:          recBool(rec, "sold_out"),
				Origin:           recString(rec, "origin"),
				Plot:             recString(rec, "plot"),
				Estate:           recString(rec, "estate"),
				Grade:            recString(rec, "grade"),
				Humidity:         recString(rec, "humidity"),
				Altitude:         recString(rec, "altitude"),
				Density:          recString(rec, "density"),
				ProcessingMethod: recString(rec, "processing_method"),
				HarvestSeason:    recString(rec, "harvest_season"),
				Variety:          recString(rec, "variety"),
			}
			if f, ok := rec["price_per_kg"].(float64); ok {
				bean.PricePerKg = &f
			}
			if f, ok := rec["price_per_pkg"].(float64); ok {
				bean.PricePerPkg = &f
			}
			beans = append(beans, bean)
		}
	}
	return beans
}

func recString(rec extract.Record, name string) string {
	s, _ := rec[name].(string)
	return s
}

func recBool(rec extract.Record, name string) bool {
	b, _ := rec[name].(bool)
	return b
}
