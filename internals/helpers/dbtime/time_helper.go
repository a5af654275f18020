package dbtime

import (
	"sync"
	"time"
)

var (
	locOnce sync.Once
	jakarta *time.Location
)

// Jakarta: zona waktu operasional dinkes. Fallback ke UTC+7 tetap kalau tzdata tidak tersedia.
func Jakarta() *time.Location {
	locOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Jakarta")
		if err != nil {
			loc = time.FixedZone("WIB", 7*60*60)
		}
		jakarta = loc
	})
	return jakarta
}

func NowJakarta() time.Time {
	return time.Now().In(Jakarta())
}

// QuarterOf mengembalikan triwulan 1..4 dari bulan t.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// CurrentPeriod: (tahun, triwulan) berjalan di WIB, dipakai sebagai default query.
func CurrentPeriod() (int, int) {
	now := NowJakarta()
	return now.Year(), QuarterOf(now)
}
