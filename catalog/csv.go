package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// 商家数据集必需的列
var businessColumns = []string{
	core.ColumnBusinessID, core.ColumnState, core.ColumnCity, core.ColumnAddress, core.ColumnPostalCode,
	"latitude", "longitude", core.ColumnPrice, core.ColumnCuisine, core.ColumnStyle,
	"is_open", core.ColumnStars, core.ColumnReviewCount,
}

// 评论数据集必需的列
var reviewColumns = []string{"user_id", core.ColumnBusinessID}

type header map[string]int

func readHeader(rd *csv.Reader, required []string) (header, error) {
	row, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadBusinesses 解析商家 CSV。
func ReadBusinesses(r io.Reader) ([]*core.Business, error) {
	rd := csv.NewReader(bufio.NewReader(r))
	rd.FieldsPerRecord = -1
	h, err := readHeader(rd, businessColumns)
	if err != nil {
		return nil, fmt.Errorf("business csv: %w", err)
	}

	var out []*core.Business
	for line := 2; ; line++ {
		row, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("business csv line %d: %w", line, err)
		}
		b, err := parseBusiness(h, row)
		if err != nil {
			return nil, fmt.Errorf("business csv line %d: %w", line, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func parseBusiness(h header, row []string) (*core.Business, error) {
	b := &core.Business{
		ID:         h.get(row, core.ColumnBusinessID),
		Name:       h.get(row, core.ColumnName),
		Address:    h.get(row, core.ColumnAddress),
		City:       h.get(row, core.ColumnCity),
		State:      h.get(row, core.ColumnState),
		PostalCode: h.get(row, core.ColumnPostalCode),
		Cuisine:    splitTags(h.get(row, core.ColumnCuisine)),
		Style:      splitTags(h.get(row, core.ColumnStyle)),
		PriceTier:  normalizeTier(h.get(row, core.ColumnPrice)),
	}
	if b.ID == "" {
		return nil, errors.New("empty business_id")
	}

	var err error
	if b.Latitude, err = parseFloat(h.get(row, "latitude")); err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	if b.Longitude, err = parseFloat(h.get(row, "longitude")); err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if b.Stars, err = parseFloat(h.get(row, core.ColumnStars)); err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	count, err := parseFloat(h.get(row, core.ColumnReviewCount))
	if err != nil {
		return nil, fmt.Errorf("review_count: %w", err)
	}
	b.ReviewCount = int(count)
	open, err := parseFloat(h.get(row, "is_open"))
	if err != nil {
		return nil, fmt.Errorf("is_open: %w", err)
	}
	b.IsOpen = open == 1
	return b, nil
}

// ReadReviews 解析评论 CSV。
func ReadReviews(r io.Reader) ([]*core.Review, error) {
	rd := csv.NewReader(bufio.NewReader(r))
	rd.FieldsPerRecord = -1
	h, err := readHeader(rd, reviewColumns)
	if err != nil {
		return nil, fmt.Errorf("review csv: %w", err)
	}

	var out []*core.Review
	for line := 2; ; line++ {
		row, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("review csv line %d: %w", line, err)
		}
		rv := &core.Review{
			ID:         h.get(row, "review_id"),
			UserID:     h.get(row, "user_id"),
			BusinessID: h.get(row, core.ColumnBusinessID),
			Text:       h.get(row, "text"),
		}
		if s := h.get(row, core.ColumnStars); s != "" {
			if rv.Stars, err = parseFloat(s); err != nil {
				return nil, fmt.Errorf("review csv line %d: stars: %w", line, err)
			}
		}
		out = append(out, rv)
	}
	return out, nil
}

// LoadBusinesses 从文件加载商家数据集。
func LoadBusinesses(path string) ([]*core.Business, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBusinesses(f)
}

// LoadReviews 从文件加载评论数据集。
func LoadReviews(path string) ([]*core.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReviews(f)
}

// splitTags 按逗号拆分多值标签，不去空白（与请求值精确匹配）。
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// normalizeTier 把 "2.0" 这样的档位规范为 "2"，空值保持为空。
func normalizeTier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
