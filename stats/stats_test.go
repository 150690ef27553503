package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FamilyQT/models"
)

func day(value string) time.Time {
	d, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func record(user, date string, qt, bible int, writing bool) models.DailyRecord {
	return models.DailyRecord{
		User_Name:        user,
		Date:             day(date),
		Qt_Count:         qt,
		Bible_Read_Count: bible,
		Writing_Done:     writing,
	}
}

func sampleRecords() []models.DailyRecord {
	return []models.DailyRecord{
		record("나영", "2025-02-28", 1, 3, true),
		record("가온", "2025-03-01", 2, 1, false),
		record("가온", "2025-03-02", 1, 4, true),
		record("나영", "2025-03-01", 3, 2, false),
		record("가온", "2025-03-10", 5, 5, true),
		record("다솜", "2025-10-01", 1, 1, false),
		record("다솜", "2025-09-30", 2, 0, true),
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "first day of a month starting on saturday", date: "2025-03-01", expected: "2025-3-1"},
		{name: "first sunday starts the second row", date: "2025-03-02", expected: "2025-3-2"},
		{name: "end of february", date: "2025-02-28", expected: "2025-2-5"},
		{name: "month starting on wednesday", date: "2025-10-01", expected: "2025-10-1"},
		{name: "month starting on sunday", date: "2023-10-07", expected: "2023-10-1"},
		{name: "second week after a sunday start", date: "2023-10-08", expected: "2023-10-2"},
		{name: "last day of a six-row month", date: "2025-03-31", expected: "2025-3-6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekKey(day(tt.date)))
		})
	}
}

func TestWeekKeyMonthBoundaryKeepsSeparateLabels(t *testing.T) {
	// Fri Feb 28 and Sat Mar 1 2025 are in the same Sunday-started week.
	assert.NotEqual(t, WeekKey(day("2025-02-28")), WeekKey(day("2025-03-01")))
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "2025년 3월 2주차", WeekLabel("2025-3-2"))
	assert.Equal(t, "garbage", WeekLabel("garbage"))
}

func TestGroupByWeekPreservesRecords(t *testing.T) {
	records := sampleRecords()
	grouped := GroupByWeek(records)

	var flattened []models.DailyRecord
	for _, weeks := range grouped {
		for _, list := range weeks {
			flattened = append(flattened, list...)
		}
	}

	assert.ElementsMatch(t, records, flattened)
}

func TestWeeklyTotalsMatchUserTotals(t *testing.T) {
	records := sampleRecords()
	perUser := UserStats(records)

	for user, weeks := range GroupByWeek(records) {
		qt, bible := 0, 0
		for _, list := range weeks {
			s := Summarize(list)
			qt += s.QtTotal
			bible += s.BibleTotal
		}
		assert.Equal(t, perUser[user].QtTotal, qt, user)
		assert.Equal(t, perUser[user].BibleTotal, bible, user)
	}
}

func TestGroupByUserSortsNewestFirst(t *testing.T) {
	grouped := GroupByUser(sampleRecords())

	require.Len(t, grouped["가온"], 3)
	assert.Equal(t, day("2025-03-10"), grouped["가온"][0].Date)
	assert.Equal(t, day("2025-03-01"), grouped["가온"][2].Date)
}

func TestWeeklyBreakdown(t *testing.T) {
	breakdown := WeeklyBreakdown(sampleRecords())

	require.Len(t, breakdown, 3)
	assert.Equal(t, "가온", breakdown[0].UserName)
	assert.Equal(t, "나영", breakdown[1].UserName)
	assert.Equal(t, "다솜", breakdown[2].UserName)

	gaon := breakdown[0].Weeks
	require.Len(t, gaon, 3)
	assert.Equal(t, "2025-3-3", gaon[0].Key)
	assert.Equal(t, "2025-3-2", gaon[1].Key)
	assert.Equal(t, "2025-3-1", gaon[2].Key)
	assert.Equal(t, Summary{QtTotal: 5, BibleTotal: 5, WritingTotal: 1, Days: 1}, gaon[0].Stats)

	// October sorts above September even though "10" < "9" as text.
	dasom := breakdown[2].Weeks
	require.Len(t, dasom, 2)
	assert.Equal(t, "2025-10-1", dasom[0].Key)
	assert.Equal(t, "2025-9-5", dasom[1].Key)
	assert.Equal(t, "2025년 10월 1주차", dasom[0].Label)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	assert.Equal(t, Summary{QtTotal: 15, BibleTotal: 16, WritingTotal: 4, Days: 7}, s)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestUserStats(t *testing.T) {
	s := UserStats(sampleRecords())

	require.Contains(t, s, "나영")
	naYoung := s["나영"]
	assert.Equal(t, 4, naYoung.QtTotal)
	assert.Equal(t, 5, naYoung.BibleTotal)
	assert.Equal(t, 1, naYoung.WritingTotal)
	assert.Equal(t, 2, naYoung.RecordCount)
	require.NotNil(t, naYoung.LastRecord)
	assert.Equal(t, day("2025-03-01"), *naYoung.LastRecord)
}

func TestUserListSkipsBlankAndDuplicates(t *testing.T) {
	records := append(sampleRecords(), record("", "2025-03-01", 1, 1, false))
	assert.Equal(t, []string{"가온", "나영", "다솜"}, UserList(records))
}

func TestUserListEmpty(t *testing.T) {
	names := UserList(nil)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestFilterByUsers(t *testing.T) {
	records := sampleRecords()

	assert.Len(t, FilterByUsers(records, "all"), len(records))
	assert.Len(t, FilterByUsers(records, ""), len(records))

	filtered := FilterByUsers(records, "가온, 다솜")
	assert.Len(t, filtered, 5)
	for _, r := range filtered {
		assert.NotEqual(t, "나영", r.User_Name)
	}

	assert.Empty(t, FilterByUsers(records, "없는사람"))
}

func TestTotalsAndPrayerStats(t *testing.T) {
	assert.Equal(t, TotalCounts{QtTotal: 15, BibleTotal: 16}, Totals(sampleRecords()))

	prayers := []models.PrayerRequest{
		{User_Name: "가온", Is_Answered: true},
		{User_Name: "나영"},
		{User_Name: "가온"},
	}
	assert.Equal(t, PrayerCounts{Total: 3, Answered: 1}, PrayerStats(prayers))
	assert.Len(t, FilterPrayersByUsers(prayers, "가온"), 2)
}
