package stats

import (
	"math"

	"github.com/FamilyQT/models"
)

// Degrees gained per QT session or per chapter read.
const DegreesPerCount = 0.084

const MaxTemperature = 100.0

func clamp(t float64) float64 {
	return math.Max(0, math.Min(t, MaxTemperature))
}

func QTTemperature(qtTotal int) float64 {
	return clamp(float64(qtTotal) * DegreesPerCount)
}

func BibleTemperature(bibleTotal int) float64 {
	return clamp(float64(bibleTotal) * DegreesPerCount)
}

func TotalTemperature(qtTemp, bibleTemp float64) float64 {
	return clamp((qtTemp + bibleTemp) / 2)
}

type Temperature struct {
	UserName   string  `json:"userName,omitempty"`
	QtTotal    int     `json:"qtTotal"`
	BibleTotal int     `json:"bibleTotal"`
	QtTemp     float64 `json:"qtTemp"`
	BibleTemp  float64 `json:"bibleTemp"`
	TotalTemp  float64 `json:"totalTemp"`
	Band       Band    `json:"band"`
}

func NewTemperature(userName string, totals TotalCounts) Temperature {
	qt := QTTemperature(totals.QtTotal)
	bible := BibleTemperature(totals.BibleTotal)
	total := TotalTemperature(qt, bible)
	return Temperature{
		UserName:   userName,
		QtTotal:    totals.QtTotal,
		BibleTotal: totals.BibleTotal,
		QtTemp:     qt,
		BibleTemp:  bible,
		TotalTemp:  total,
		Band:       BandFor(total),
	}
}

// UserTemperatures computes one temperature per user from cumulative counts,
// ordered by user name.
func UserTemperatures(records []models.DailyRecord) []Temperature {
	totals := make(map[string]TotalCounts)
	for _, r := range records {
		t := totals[r.User_Name]
		t.QtTotal += r.Qt_Count
		t.BibleTotal += r.Bible_Read_Count
		totals[r.User_Name] = t
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	SortNames(names)

	out := make([]Temperature, 0, len(names))
	for _, name := range names {
		out = append(out, NewTemperature(name, totals[name]))
	}
	return out
}

type Band struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var bands = []struct {
	below float64
	band  Band
}{
	{25, Band{Name: "cold", Label: "차가움", Color: "#3b82f6"}},
	{50, Band{Name: "lukewarm", Label: "미지근함", Color: "#22c55e"}},
	{75, Band{Name: "warm", Label: "너무 뜨거워요 성령이 불타고 있어요!", Color: "#eab308"}},
	{100, Band{Name: "hot", Label: "너무 뜨거워요 성령이 불타고 있어요!", Color: "#f97316"}},
}

func BandFor(temp float64) Band {
	for _, b := range bands {
		if temp < b.below {
			return b.band
		}
	}
	return Band{Name: "boiling", Label: "너무 뜨거워요 성령이 불타고 있어요!", Color: "#ef4444"}
}
