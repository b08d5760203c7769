package query

// BuildingTypeNone — значение «нет» в выпадающем списке типа здания.
const BuildingTypeNone = "nincs"

// Budapest отображается как «Budapest», но в API называется «Főváros».
const (
	budapestDisplay = "Budapest"
	budapestAPI     = "Főváros"
)

// Counties — медье Венгрии в порядке отображения.
var Counties = []string{
	"Bács-Kiskun",
	"Baranya",
	"Békés",
	"Borsod-Abaúj-Zemplén",
	"Csongrád-Csanád",
	"Fejér",
	"Győr-Moson-Sopron",
	"Hajdú-Bihar",
	"Heves",
	"Jász-Nagykun-Szolnok",
	"Komárom-Esztergom",
	"Nógrád",
	"Pest",
	"Somogy",
	"Szabolcs-Szatmár-Bereg",
	"Tolna",
	"Vas",
	"Veszprém",
	"Zala",
	budapestDisplay,
}

// BuildingTypes — значения фильтра типа здания.
var BuildingTypes = []string{
	"lakóház",
	"öröklakás",
	"gazdasági épület",
	"egyéb",
	"garázs",
	"üdülő",
	"pince",
}

// Classifications — значения фильтра классификации.
var Classifications = []string{
	"egyéb",
	"ipari",
	"lakóépület",
	"mezőgazdasági",
}

// PricePreset — пресет диапазона цены для выпадающих списков.
type PricePreset struct {
	Value string
	Range PriceRange
}

// PricePresets — пресеты фильтров стартовой и минимальной цены.
var PricePresets = []PricePreset{
	{Value: "0-1000000", Range: PriceRange{Min: 0, Max: 1_000_000}},
	{Value: "1000001-5000000", Range: PriceRange{Min: 1_000_001, Max: 5_000_000}},
	{Value: "5000001-10000000", Range: PriceRange{Min: 5_000_001, Max: 10_000_000}},
	{Value: "10000001-", Range: PriceRange{Min: 10_000_001}},
}

// countyIndex — позиция округа в Counties.
var countyIndex = func() map[string]int {
	m := make(map[string]int, len(Counties))
	for i, c := range Counties {
		m[c] = i
	}
	return m
}()

// CountyAPIName возвращает имя округа в том виде, в каком его ждёт API.
func CountyAPIName(name string) string {
	if name == budapestDisplay {
		return budapestAPI
	}
	return name
}

// NormalizeCounties оставляет только известные округа, без повторов,
// в порядке Counties. «Főváros» принимается как «Budapest».
func NormalizeCounties(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	selected := make([]bool, len(Counties))
	found := false
	for _, n := range names {
		if n == budapestAPI {
			n = budapestDisplay
		}
		if i, ok := countyIndex[n]; ok {
			selected[i] = true
			found = true
		}
	}
	if !found {
		return nil
	}
	out := make([]string, 0, len(names))
	for i, ok := range selected {
		if ok {
			out = append(out, Counties[i])
		}
	}
	return out
}
