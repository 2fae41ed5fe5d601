package ipinfolib

import (
	"strings"

	"github.com/9seconds/ipinfo/optional"
)

// Coordinates is a location of IP address. Each component is optional
// because it can be missing or unparseable independently.
type Coordinates struct {
	Latitude  optional.Value[float64] `json:"latitude"`
	Longitude optional.Value[float64] `json:"longitude"`
}

// LookupResult is a read-only view on a response of ipinfo.io. It owns
// its own copy of the payload so nothing can modify it after creation.
//
// Plan-gated objects (ASN, Company, Privacy etc) are built on each
// access. They are stateless views on the same payload so there is no
// reason to memoize them.
type LookupResult struct {
	data payload
}

func (l *LookupResult) IP() optional.Value[string] {
	return l.data.str("ip")
}

func (l *LookupResult) Hostname() optional.Value[string] {
	return l.data.str("hostname")
}

func (l *LookupResult) Anycast() optional.Value[bool] {
	return l.data.boolean("anycast")
}

// Bogon is set by ipinfo.io for private and reserved ranges. Payloads
// of bogons contain nothing else but ip.
func (l *LookupResult) Bogon() optional.Value[bool] {
	return l.data.boolean("bogon")
}

func (l *LookupResult) City() optional.Value[string] {
	return l.data.str("city")
}

func (l *LookupResult) Region() optional.Value[string] {
	return l.data.str("region")
}

// Country returns 2-letter ISO3166 country code as it is reported by
// ipinfo.io.
func (l *LookupResult) Country() optional.Value[string] {
	return l.data.str("country")
}

func (l *LookupResult) CountryName() optional.Value[string] {
	return l.data.str("country_name")
}

func (l *LookupResult) IsEU() optional.Value[bool] {
	return l.data.boolean("is_eu")
}

func (l *LookupResult) Org() optional.Value[string] {
	return l.data.str("org")
}

func (l *LookupResult) Postal() optional.Value[string] {
	return l.data.str("postal")
}

func (l *LookupResult) Timezone() optional.Value[string] {
	return l.data.str("timezone")
}

// Latitude prefers an explicit latitude field and falls back to the
// first half of loc.
func (l *LookupResult) Latitude() optional.Value[float64] {
	if value := l.data.float("latitude"); value.IsSome() {
		return value
	}

	lat, _ := l.splitLoc()

	return lat
}

// Longitude prefers an explicit longitude field and falls back to the
// second half of loc.
func (l *LookupResult) Longitude() optional.Value[float64] {
	if value := l.data.float("longitude"); value.IsSome() {
		return value
	}

	_, lon := l.splitLoc()

	return lon
}

// Coordinates is empty only if both latitude and longitude are unknown.
func (l *LookupResult) Coordinates() optional.Value[Coordinates] {
	coords := Coordinates{
		Latitude:  l.Latitude(),
		Longitude: l.Longitude(),
	}

	if coords.Latitude.IsNone() && coords.Longitude.IsNone() {
		return optional.None[Coordinates]()
	}

	return optional.Some(coords)
}

func (l *LookupResult) splitLoc() (optional.Value[float64], optional.Value[float64]) {
	loc, ok := l.data.str("loc").Get()
	if !ok {
		return optional.None[float64](), optional.None[float64]()
	}

	chunks := strings.SplitN(loc, ",", 2)
	lat := parseFloat(chunks[0])
	lon := optional.None[float64]()

	if len(chunks) == 2 {
		lon = parseFloat(chunks[1])
	}

	return lat, lon
}

func (l *LookupResult) ASN() optional.Value[ASN] {
	if obj, ok := l.data.object("asn"); ok {
		return optional.Some(ASN{obj})
	}

	return optional.None[ASN]()
}

func (l *LookupResult) Company() optional.Value[Company] {
	if obj, ok := l.data.object("company"); ok {
		return optional.Some(Company{obj})
	}

	return optional.None[Company]()
}

func (l *LookupResult) Privacy() optional.Value[Privacy] {
	if obj, ok := l.data.object("privacy"); ok {
		return optional.Some(Privacy{obj})
	}

	return optional.None[Privacy]()
}

func (l *LookupResult) Abuse() optional.Value[Abuse] {
	if obj, ok := l.data.object("abuse"); ok {
		return optional.Some(Abuse{obj})
	}

	return optional.None[Abuse]()
}

func (l *LookupResult) Domains() optional.Value[Domains] {
	if obj, ok := l.data.object("domains"); ok {
		return optional.Some(Domains{obj})
	}

	return optional.None[Domains]()
}

func (l *LookupResult) Carrier() optional.Value[Carrier] {
	if obj, ok := l.data.object("carrier"); ok {
		return optional.Some(Carrier{obj})
	}

	return optional.None[Carrier]()
}

func (l *LookupResult) Continent() optional.Value[Continent] {
	if obj, ok := l.data.object("continent"); ok {
		return optional.Some(Continent{obj})
	}

	return optional.None[Continent]()
}

func (l *LookupResult) CountryFlag() optional.Value[CountryFlag] {
	if obj, ok := l.data.object("country_flag"); ok {
		return optional.Some(CountryFlag{obj})
	}

	return optional.None[CountryFlag]()
}

func (l *LookupResult) CountryCurrency() optional.Value[CountryCurrency] {
	if obj, ok := l.data.object("country_currency"); ok {
		return optional.Some(CountryCurrency{obj})
	}

	return optional.None[CountryCurrency]()
}

// Raw returns a deep copy of the whole payload. Use it for fields which
// have no dedicated accessor.
func (l *LookupResult) Raw() map[string]interface{} {
	return deepCopy(l.data).(map[string]interface{})
}

// MarshalJSON returns the payload as is.
func (l *LookupResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(l.data))
}

// NewLookupResult builds a result from a decoded payload. Payload is
// copied.
func NewLookupResult(data map[string]interface{}) *LookupResult {
	if data == nil {
		data = map[string]interface{}{}
	}

	return &LookupResult{
		data: payload(deepCopy(data).(map[string]interface{})),
	}
}
