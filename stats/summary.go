package stats

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FamilyQT/models"
)

type Summary struct {
	QtTotal      int `json:"qtTotal"`
	BibleTotal   int `json:"bibleTotal"`
	WritingTotal int `json:"writingTotal"`
	Days         int `json:"days"`
}

// Summarize sums counts over a period. Days is the number of records.
func Summarize(records []models.DailyRecord) Summary {
	var s Summary
	for _, r := range records {
		s.QtTotal += r.Qt_Count
		s.BibleTotal += r.Bible_Read_Count
		if r.Writing_Done {
			s.WritingTotal++
		}
		s.Days++
	}
	return s
}

type UserSummary struct {
	QtTotal      int        `json:"qtTotal"`
	BibleTotal   int        `json:"bibleTotal"`
	WritingTotal int        `json:"writingTotal"`
	RecordCount  int        `json:"recordCount"`
	LastRecord   *time.Time `json:"lastRecord"`
}

type TotalCounts struct {
	QtTotal    int `json:"qtTotal"`
	BibleTotal int `json:"bibleTotal"`
}

type PrayerCounts struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
}

// SortNames orders names the way Korean speakers expect (가나다순).
func SortNames(names []string) {
	c := collate.New(language.Korean)
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
}

// UserList returns the distinct, non-empty user names in collation order.
func UserList(records []models.DailyRecord) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, r := range records {
		if r.User_Name == "" {
			continue
		}
		if _, ok := seen[r.User_Name]; ok {
			continue
		}
		seen[r.User_Name] = struct{}{}
		names = append(names, r.User_Name)
	}
	SortNames(names)
	return names
}

func UserStats(records []models.DailyRecord) map[string]UserSummary {
	out := make(map[string]UserSummary)
	for _, r := range records {
		if r.User_Name == "" {
			continue
		}
		s := out[r.User_Name]
		s.QtTotal += r.Qt_Count
		s.BibleTotal += r.Bible_Read_Count
		if r.Writing_Done {
			s.WritingTotal++
		}
		s.RecordCount++
		if s.LastRecord == nil || r.Date.After(*s.LastRecord) {
			d := r.Date
			s.LastRecord = &d
		}
		out[r.User_Name] = s
	}
	return out
}

func Totals(records []models.DailyRecord) TotalCounts {
	var t TotalCounts
	for _, r := range records {
		t.QtTotal += r.Qt_Count
		t.BibleTotal += r.Bible_Read_Count
	}
	return t
}

func PrayerStats(prayers []models.PrayerRequest) PrayerCounts {
	c := PrayerCounts{Total: len(prayers)}
	for _, p := range prayers {
		if p.Is_Answered {
			c.Answered++
		}
	}
	return c
}

// ParseSelection turns the "users" query value into a set of names.
// Empty or "all" selects everyone and yields nil.
func ParseSelection(selection string) map[string]struct{} {
	selection = strings.TrimSpace(selection)
	if selection == "" || selection == "all" {
		return nil
	}
	set := make(map[string]struct{})
	for _, name := range strings.Split(selection, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

func FilterByUsers(records []models.DailyRecord, selection string) []models.DailyRecord {
	set := ParseSelection(selection)
	if set == nil {
		return records
	}
	filtered := make([]models.DailyRecord, 0, len(records))
	for _, r := range records {
		if _, ok := set[r.User_Name]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func FilterPrayersByUsers(prayers []models.PrayerRequest, selection string) []models.PrayerRequest {
	set := ParseSelection(selection)
	if set == nil {
		return prayers
	}
	filtered := make([]models.PrayerRequest, 0, len(prayers))
	for _, p := range prayers {
		if _, ok := set[p.User_Name]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
