package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hotel-optimizer-go/internal/logger"
	"hotel-optimizer-go/internal/types"
)

// Dataset is everything the core consumes: the three record collections,
// loaded once per process (or per admin reload).
type Dataset struct {
	Bookings  []types.BookingRecord
	Offerings []types.OfferingRecord
	Reviews   []types.ReviewSummaryRecord
}

// Source supplies the record collections. The file implementation below is
// the default; tests substitute their own.
type Source interface {
	Load() (Dataset, error)
}

// FileSource reads hotel_bookings, hotels and reviews tables from Dir,
// accepting either .csv or .xlsx per table. A missing file yields an empty
// collection; a file whose header matches none of the expected columns is a
// setup error.
type FileSource struct {
	Dir string
}

func (s FileSource) Load() (Dataset, error) {
	log := logger.Component("dataset").WithField("dir", s.Dir)

	var ds Dataset
	bookings, err := loadTable(s.Dir, "hotel_bookings")
	if err != nil {
		return Dataset{}, fmt.Errorf("load bookings: %w", err)
	}
	if bookings != nil {
		ds.Bookings, err = parseBookings(bookings)
		if err != nil {
			return Dataset{}, fmt.Errorf("parse bookings: %w", err)
		}
	}

	offerings, err := loadTable(s.Dir, "hotels")
	if err != nil {
		return Dataset{}, fmt.Errorf("load hotels: %w", err)
	}
	if offerings != nil {
		ds.Offerings, err = parseOfferings(offerings)
		if err != nil {
			return Dataset{}, fmt.Errorf("parse hotels: %w", err)
		}
	}

	reviews, err := loadTable(s.Dir, "reviews")
	if err != nil {
		return Dataset{}, fmt.Errorf("load reviews: %w", err)
	}
	if reviews != nil {
		ds.Reviews = parseReviews(reviews)
	}

	log.WithFields(map[string]interface{}{
		"bookings":  len(ds.Bookings),
		"offerings": len(ds.Offerings),
		"reviews":   len(ds.Reviews),
	}).Info("dataset loaded")
	return ds, nil
}

// loadTable returns the raw rows of <dir>/<base>.csv or <dir>/<base>.xlsx,
// or nil rows when neither file exists.
func loadTable(dir, base string) ([][]string, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if ext == ".csv" {
			return readCSV(path)
		}
		return readXLSX(path)
	}
	logger.Component("dataset").WithField("table", base).Warn("table file not found, continuing with empty collection")
	return nil, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// headerIndex maps normalized column names (plus aliases) to positions.
func headerIndex(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		n := strings.ToLower(strings.TrimSpace(h))
		n = strings.ReplaceAll(n, " ", "_")
		if _, seen := idx[n]; !seen {
			idx[n] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func pick(idx map[string]int, names ...string) int {
	for _, n := range names {
		if i, ok := idx[n]; ok {
			return i
		}
	}
	return -1
}

func toInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func toBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func parseBookings(rows [][]string) ([]types.BookingRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := headerIndex(rows[0])
	hotelIdx := pick(idx, "hotel", "hotel_type")
	canceledIdx := pick(idx, "is_canceled", "is_cancelled", "canceled")
	leadIdx := pick(idx, "lead_time")
	adrIdx := pick(idx, "adr", "average_daily_rate")
	if hotelIdx == -1 && canceledIdx == -1 && leadIdx == -1 && adrIdx == -1 {
		return nil, fmt.Errorf("bookings table has none of the required columns (hotel, is_canceled, lead_time, adr)")
	}
	yearIdx := pick(idx, "arrival_date_year")
	monthIdx := pick(idx, "arrival_date_month", "arrival_month")
	dayIdx := pick(idx, "arrival_date_day_of_month", "arrival_day")
	segmentIdx := pick(idx, "market_segment")
	reservedIdx := pick(idx, "reserved_room_type")
	assignedIdx := pick(idx, "assigned_room_type")
	waitIdx := pick(idx, "days_in_waiting_list")
	repeatIdx := pick(idx, "is_repeated_guest")
	prevIdx := pick(idx, "previous_cancellations")

	out := make([]types.BookingRecord, 0, len(rows)-1)
	for i, r := range rows {
		if i == 0 {
			continue
		}
		b := types.BookingRecord{
			Hotel:                 cell(r, hotelIdx),
			IsCanceled:            toBool(cell(r, canceledIdx)),
			LeadTime:              toInt(cell(r, leadIdx)),
			ArrivalYear:           toInt(cell(r, yearIdx)),
			ArrivalMonth:          cell(r, monthIdx),
			ArrivalDay:            toInt(cell(r, dayIdx)),
			MarketSegment:         cell(r, segmentIdx),
			ReservedRoomType:      cell(r, reservedIdx),
			AssignedRoomType:      cell(r, assignedIdx),
			DaysInWaitingList:     toInt(cell(r, waitIdx)),
			IsRepeatedGuest:       toBool(cell(r, repeatIdx)),
			PreviousCancellations: toInt(cell(r, prevIdx)),
		}
		// non-numeric ADR stays in the row but is flagged, so aggregates
		// that use ADR can exclude it instead of counting it as zero
		if adr, err := strconv.ParseFloat(cell(r, adrIdx), 64); err == nil && adr >= 0 {
			b.ADR = adr
			b.ADRValid = true
		}
		out = append(out, b)
	}
	return out, nil
}

func parseOfferings(rows [][]string) ([]types.OfferingRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := headerIndex(rows[0])
	idIdx := pick(idx, "id", "hotel_id", "offering_id")
	nameIdx := pick(idx, "name", "hotel", "hotel_name")
	if idIdx == -1 && nameIdx == -1 {
		return nil, fmt.Errorf("hotels table has neither an id nor a name column")
	}
	classIdx := pick(idx, "hotel_class", "class", "stars")
	addrIdx := pick(idx, "address")
	urlIdx := pick(idx, "url", "link")

	out := make([]types.OfferingRecord, 0, len(rows)-1)
	for i, r := range rows {
		if i == 0 {
			continue
		}
		o := types.OfferingRecord{
			ID:      cell(r, idIdx),
			Name:    cell(r, nameIdx),
			Address: cell(r, addrIdx),
			URL:     cell(r, urlIdx),
		}
		if o.ID == "" {
			o.ID = o.Name
		}
		o.HotelClass, _ = strconv.ParseFloat(cell(r, classIdx), 64)
		out = append(out, o)
	}
	return out, nil
}

func parseReviews(rows [][]string) []types.ReviewSummaryRecord {
	if len(rows) == 0 {
		return nil
	}
	idx := headerIndex(rows[0])
	idIdx := pick(idx, "offering_id", "hotel_id", "id")
	sentIdx := pick(idx, "sentiment_score", "sentiment")
	ratingIdx := pick(idx, "avg_rating", "rating")
	countIdx := pick(idx, "n_reviews", "review_count", "reviews")
	prosIdx := pick(idx, "pros")
	consIdx := pick(idx, "cons")

	out := make([]types.ReviewSummaryRecord, 0, len(rows)-1)
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.ReviewSummaryRecord{
			OfferingID:  cell(r, idIdx),
			ReviewCount: toInt(cell(r, countIdx)),
			Pros:        splitList(cell(r, prosIdx)),
			Cons:        splitList(cell(r, consIdx)),
		}
		rec.SentimentScore, _ = strconv.ParseFloat(cell(r, sentIdx), 64)
		rec.AvgRating, _ = strconv.ParseFloat(cell(r, ratingIdx), 64)
		if rec.OfferingID == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
