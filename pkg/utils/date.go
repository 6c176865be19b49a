package utils

import (
	"time"
)

var wibLocation = loadWibLocation()

func loadWibLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// GetWibTimeLocation returns the Asia/Jakarta location (fixed +07:00 when tzdata is missing).
func GetWibTimeLocation() *time.Location {
	return wibLocation
}

func TimeNowWIB() time.Time {
	return time.Now().In(wibLocation)
}

// PrettyDate formats t as "Senin, 02 Jan 2006 15:04 WIB".
func PrettyDate(t time.Time) string {
	days := [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	t = t.In(wibLocation)
	return days[t.Weekday()] + ", " + t.Format("02 Jan 2006 15:04") + " WIB"
}
