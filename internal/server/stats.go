package server

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/npetit/facturescan/internal/entity"
)

func (s *Service) getStats(c *gin.Context) {
	invs, err := s.invoices.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}

	now := time.Now()
	total := decimal.Zero
	suppliers := make(map[string]struct{})
	thisMonth := 0
	for _, inv := range invs {
		if v, err := decimal.NewFromString(inv.GrossAmount); err == nil {
			total = total.Add(v)
		}
		if inv.Supplier != "" {
			suppliers[inv.Supplier] = struct{}{}
		}
		if d, ok := parseInvoiceDate(inv.Date); ok &&
			d.Year() == now.Year() && d.Month() == now.Month() {
			thisMonth++
		}
	}

	c.JSON(http.StatusOK, entity.Stats{
		TotalInvoices:     len(invs),
		TotalGross:        total.StringFixed(2),
		TotalSuppliers:    len(suppliers),
		InvoicesThisMonth: thisMonth,
	})
}

func (s *Service) listSuppliers(c *gin.Context) {
	invs, err := s.invoices.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}

	type agg struct {
		count   int
		total   decimal.Decimal
		address string
	}
	byName := make(map[string]*agg)
	for _, inv := range invs {
		if inv.Supplier == "" {
			continue
		}
		a := byName[inv.Supplier]
		if a == nil {
			a = &agg{}
			byName[inv.Supplier] = a
		}
		a.count++
		if v, err := decimal.NewFromString(inv.GrossAmount); err == nil {
			a.total = a.total.Add(v)
		}
		if a.address == "" {
			a.address = inv.Address
		}
	}

	out := make([]entity.SupplierSummary, 0, len(byName))
	for name, a := range byName {
		out = append(out, entity.SupplierSummary{
			Name:         name,
			InvoiceCount: a.count,
			TotalGross:   a.total.StringFixed(2),
			Address:      a.address,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	c.JSON(http.StatusOK, gin.H{"suppliers": out, "count": len(out)})
}

// Extracted dates are stored verbatim, so they arrive in any of the
// shapes the matchers accept: numeric day-first, numeric year-first, or
// day + French month name + year.
var frenchMonths = map[string]time.Month{
	"janvier": time.January, "février": time.February, "fevrier": time.February,
	"mars": time.March, "avril": time.April, "mai": time.May,
	"juin": time.June, "juillet": time.July, "août": time.August,
	"aout": time.August, "septembre": time.September, "octobre": time.October,
	"novembre": time.November, "décembre": time.December, "decembre": time.December,
}

var reNamedMonthDate = regexp.MustCompile(`(?i)^(\d{1,2})\s+([a-zéèêûà]+)\s+(\d{4})$`)

func parseInvoiceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006",
		"02.01.2006", "2.1.2006",
		"2006/01/02", "2006-01-02", "2006.01.02",
	} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	if m := reNamedMonthDate.FindStringSubmatch(s); m != nil {
		if month, ok := frenchMonths[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if day >= 1 && day <= 31 {
				return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
			}
		}
	}
	return time.Time{}, false
}
