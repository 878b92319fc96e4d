package specparts

import (
	"context"
	"fmt"
	"net/url"
	"specparts-proxy/pkg/models"

	"go.uber.org/zap"
)

func (c *Client) partListPath(page int) string {
	return fmt.Sprintf("/part/list?lang=1&limit=%d&page=%d&brand[]=%s&output=v1",
		c.cfg.PageLimit, page, url.QueryEscape(c.cfg.Brand))
}

// LoadAllProducts walks the part listing page by page, in order, until a page has no data
// or the page count reported by the upstream is exceeded. The count is re-read from every
// page. It returns the accumulated records and the last known page count.
func (c *Client) LoadAllProducts(ctx context.Context, token string) ([]models.Product, int, error) {
	var all []models.Product
	page, totalPages := 1, 1

	for page <= totalPages {
		var p models.Page
		if err := c.GetInto(ctx, c.partListPath(page), token, &p); err != nil {
			return nil, totalPages, err
		}
		if !p.HasData {
			c.log.Debug("part list ended without data", zap.Int("page", page))
			break
		}

		all = append(all, p.Data...)
		if p.HasPaging {
			totalPages = p.TotalPages
		}
		page++
	}

	c.log.Info("catalog loaded", zap.Int("products", len(all)), zap.Int("pages", totalPages))
	return all, totalPages, nil
}
