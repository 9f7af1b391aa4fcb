package importer

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"astra/internal/pkg/workerpool"
	"astra/internal/repository"

	"github.com/gocolly/colly/v2"
)

// Importer crawls a vehicle listings site and upserts what it finds into the
// catalog. Listing pages yield detail links; detail pages yield one car each.
type Importer struct {
	repo        repository.CarRepository
	baseURL     string
	allowedHost string
	headless    bool
	logger      *log.Logger
}

func New(repo repository.CarRepository, baseURL string, headless bool, logger *log.Logger) *Importer {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &Importer{
		repo:        repo,
		baseURL:     baseURL,
		allowedHost: hostFromBaseURL(baseURL),
		headless:    headless,
		logger:      logger,
	}
}

type listItem struct {
	Link string
}

type Summary struct {
	Pages    int
	Listings int
	Imported int
	Failed   int
}

// Run walks the paginated listing and imports every detail page, fanning the
// detail fetches out over the worker pool.
func (i *Importer) Run(ctx context.Context, pages int, workers int) (Summary, error) {
	if i == nil || i.repo == nil {
		return Summary{}, fmt.Errorf("nil importer/repository")
	}
	if i.baseURL == "" {
		return Summary{}, fmt.Errorf("importer base URL not configured")
	}
	if pages <= 0 {
		pages = 1
	}
	if workers <= 0 {
		workers = 4
	}

	var summary Summary
	var mu sync.Mutex

	pool := workerpool.New(workers, workers*2)
	results := pool.Run(ctx)

	for page := 1; page <= pages; page++ {
		listURL := fmt.Sprintf("%s/listings?page=%d", i.baseURL, page)
		items, err := i.fetchListingPage(ctx, page, listURL)
		if err != nil {
			if i.logger != nil {
				i.logger.Printf("[Importer] listing page %d failed: %v", page, err)
			}
			continue
		}
		summary.Pages++
		summary.Listings += len(items)

		for _, it := range items {
			link := it.Link
			if strings.TrimSpace(link) == "" {
				continue
			}
			pool.Submit(func(ctx context.Context) error {
				detail, err := i.scrapeDetailPage(ctx, link)
				if err != nil {
					return fmt.Errorf("detail %s: %w", link, err)
				}
				up, err := detailToUpsert(detail)
				if err != nil {
					return fmt.Errorf("parse %s: %w", link, err)
				}
				if err := i.repo.UpsertCars(ctx, []repository.CarUpsert{up}); err != nil {
					return fmt.Errorf("upsert %s: %w", link, err)
				}
				mu.Lock()
				summary.Imported++
				mu.Unlock()
				return nil
			})
		}
	}

	pool.Close()

	for res := range results {
		if res.Err != nil {
			mu.Lock()
			summary.Failed++
			mu.Unlock()
			if i.logger != nil {
				i.logger.Printf("[Importer] %v", res.Err)
			}
		}
	}
	return summary, ctx.Err()
}

func (i *Importer) fetchListingPage(ctx context.Context, page int, listURL string) ([]listItem, error) {
	if i.headless {
		return i.fetchListingPageHeadless(ctx, page)
	}
	return i.fetchListingPageStatic(ctx, listURL)
}

func (i *Importer) fetchListingPageStatic(ctx context.Context, listURL string) ([]listItem, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(i.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 750 * time.Millisecond, Delay: 400 * time.Millisecond})

	items := make([]listItem, 0)

	c.OnHTML("a", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" || !strings.Contains(href, "/cars/") {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		items = append(items, listItem{Link: abs})
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	dedup := map[string]struct{}{}
	out := make([]listItem, 0, len(items))
	for _, it := range items {
		u := normalizeURL(it.Link)
		if u == "" {
			continue
		}
		if _, ok := dedup[u]; ok {
			continue
		}
		dedup[u] = struct{}{}
		out = append(out, listItem{Link: u})
	}
	return out, nil
}

type carDetail struct {
	title        string
	manufacturer string
	model        string
	year         string
	bodyType     string
	price        string
	engineInfo   string
	transmission string
	fuelType     string
	description  string
	features     []string
}

func (i *Importer) scrapeDetailPage(ctx context.Context, carURL string) (carDetail, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(i.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	var out carDetail
	var reqErr error

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if out.title == "" {
			out.title = strings.TrimSpace(e.Text)
		}
	})

	// Spec tables render as dt/dd or labeled table rows on most listing
	// sites; pick up whichever attribute names appear.
	c.OnHTML("[data-spec]", func(e *colly.HTMLElement) {
		value := strings.TrimSpace(e.Text)
		switch strings.ToLower(e.Attr("data-spec")) {
		case "manufacturer", "make":
			out.manufacturer = value
		case "model":
			out.model = value
		case "year":
			out.year = value
		case "body-type", "body_type":
			out.bodyType = value
		case "price":
			out.price = value
		case "engine":
			out.engineInfo = value
		case "transmission":
			out.transmission = value
		case "fuel-type", "fuel_type":
			out.fuelType = value
		}
	})

	c.OnHTML(".description, [data-description]", func(e *colly.HTMLElement) {
		if out.description == "" {
			out.description = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML(".features li, [data-feature]", func(e *colly.HTMLElement) {
		if f := strings.TrimSpace(e.Text); f != "" {
			out.features = append(out.features, f)
		}
	})

	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return carDetail{}, ctx.Err()
	}
	if err := c.Visit(carURL); err != nil {
		return carDetail{}, err
	}
	c.Wait()
	if reqErr != nil {
		return carDetail{}, reqErr
	}
	return out, nil
}

func hostFromBaseURL(baseURL string) string {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.Fragment = ""
	u.RawQuery = ""
	return u.String()
}
