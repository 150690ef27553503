package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FamilyQT/models"
)

// WeekKey buckets a date as "year-month-week". The week number counts
// Sunday-started rows of the month's calendar, so the first days of a
// month may share a real week with the last days of the previous month
// while carrying a different label.
func WeekKey(date time.Time) string {
	year, month, day := date.Date()
	firstWeekday := int(time.Date(year, month, 1, 0, 0, 0, 0, date.Location()).Weekday())
	week := int(math.Ceil(float64(day+firstWeekday) / 7))
	return fmt.Sprintf("%d-%d-%d", year, int(month), week)
}

type weekParts struct {
	year, month, week int
}

func parseWeekKey(key string) (weekParts, bool) {
	fields := strings.Split(key, "-")
	if len(fields) != 3 {
		return weekParts{}, false
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return weekParts{}, false
		}
		nums[i] = n
	}
	return weekParts{nums[0], nums[1], nums[2]}, true
}

// WeekLabel renders a week key for display, e.g. "2025년 3월 2주차".
func WeekLabel(key string) string {
	p, ok := parseWeekKey(key)
	if !ok {
		return key
	}
	return fmt.Sprintf("%d년 %d월 %d주차", p.year, p.month, p.week)
}

func weekKeyAfter(a, b string) bool {
	pa, okA := parseWeekKey(a)
	pb, okB := parseWeekKey(b)
	if !okA || !okB {
		return a > b
	}
	if pa.year != pb.year {
		return pa.year > pb.year
	}
	if pa.month != pb.month {
		return pa.month > pb.month
	}
	return pa.week > pb.week
}

func sortNewestFirst(records []models.DailyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

// GroupByUser maps each user to their records, newest first.
func GroupByUser(records []models.DailyRecord) map[string][]models.DailyRecord {
	grouped := make(map[string][]models.DailyRecord)
	for _, r := range records {
		grouped[r.User_Name] = append(grouped[r.User_Name], r)
	}
	for _, list := range grouped {
		sortNewestFirst(list)
	}
	return grouped
}

// GroupByWeek maps user -> week key -> records of that user in that week.
func GroupByWeek(records []models.DailyRecord) map[string]map[string][]models.DailyRecord {
	grouped := make(map[string]map[string][]models.DailyRecord)
	for _, r := range records {
		weeks, ok := grouped[r.User_Name]
		if !ok {
			weeks = make(map[string][]models.DailyRecord)
			grouped[r.User_Name] = weeks
		}
		key := WeekKey(r.Date)
		weeks[key] = append(weeks[key], r)
	}
	for _, weeks := range grouped {
		for _, list := range weeks {
			sortNewestFirst(list)
		}
	}
	return grouped
}

type WeekGroup struct {
	Key     string               `json:"key"`
	Label   string               `json:"label"`
	Stats   Summary              `json:"stats"`
	Records []models.DailyRecord `json:"records"`
}

type UserWeeks struct {
	UserName string      `json:"userName"`
	Weeks    []WeekGroup `json:"weeks"`
}

// WeeklyBreakdown is GroupByWeek in display order: users by Korean
// collation, weeks and records newest first.
func WeeklyBreakdown(records []models.DailyRecord) []UserWeeks {
	grouped := GroupByWeek(records)

	users := make([]string, 0, len(grouped))
	for name := range grouped {
		users = append(users, name)
	}
	SortNames(users)

	out := make([]UserWeeks, 0, len(users))
	for _, name := range users {
		weeks := grouped[name]
		keys := make([]string, 0, len(weeks))
		for k := range weeks {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return weekKeyAfter(keys[i], keys[j]) })

		uw := UserWeeks{UserName: name, Weeks: make([]WeekGroup, 0, len(keys))}
		for _, k := range keys {
			uw.Weeks = append(uw.Weeks, WeekGroup{
				Key:     k,
				Label:   WeekLabel(k),
				Stats:   Summarize(weeks[k]),
				Records: weeks[k],
			})
		}
		out = append(out, uw)
	}
	return out
}
