package ipinfolib

import "github.com/9seconds/ipinfo/optional"

// ASN describes an autonomous system of IP address. Requires basic plan
// or higher.
type ASN struct {
	data payload
}

// ASN returns an identifier like AS15169.
func (a ASN) ASN() optional.Value[string] {
	return a.data.str("asn")
}

func (a ASN) Name() optional.Value[string] {
	return a.data.str("name")
}

func (a ASN) Domain() optional.Value[string] {
	return a.data.str("domain")
}

// Route is an announced CIDR like 8.8.8.0/24.
func (a ASN) Route() optional.Value[string] {
	return a.data.str("route")
}

// Type is one of isp, business, education, hosting, inactive.
func (a ASN) Type() optional.Value[string] {
	return a.data.str("type")
}

// Company describes an owner of IP address. Requires business plan or
// higher.
type Company struct {
	data payload
}

func (c Company) Name() optional.Value[string] {
	return c.data.str("name")
}

func (c Company) Domain() optional.Value[string] {
	return c.data.str("domain")
}

func (c Company) Type() optional.Value[string] {
	return c.data.str("type")
}

// Privacy tells if IP address belongs to some anonymization service.
type Privacy struct {
	data payload
}

func (p Privacy) VPN() optional.Value[bool] {
	return p.data.boolean("vpn")
}

func (p Privacy) Proxy() optional.Value[bool] {
	return p.data.boolean("proxy")
}

func (p Privacy) Tor() optional.Value[bool] {
	return p.data.boolean("tor")
}

func (p Privacy) Relay() optional.Value[bool] {
	return p.data.boolean("relay")
}

func (p Privacy) Hosting() optional.Value[bool] {
	return p.data.boolean("hosting")
}

// Service is a name of VPN or proxy provider if it is known. ipinfo.io
// returns an empty string if it is not.
func (p Privacy) Service() optional.Value[string] {
	return p.data.str("service")
}

// Abuse is a contact to report an abuse of IP address.
type Abuse struct {
	data payload
}

func (a Abuse) Address() optional.Value[string] {
	return a.data.str("address")
}

func (a Abuse) Country() optional.Value[string] {
	return a.data.str("country")
}

func (a Abuse) Email() optional.Value[string] {
	return a.data.str("email")
}

func (a Abuse) Name() optional.Value[string] {
	return a.data.str("name")
}

func (a Abuse) Network() optional.Value[string] {
	return a.data.str("network")
}

func (a Abuse) Phone() optional.Value[string] {
	return a.data.str("phone")
}

// Domains is a page of hosted domains of IP address.
type Domains struct {
	data payload
}

func (d Domains) IP() optional.Value[string] {
	return d.data.str("ip")
}

func (d Domains) Total() optional.Value[int] {
	return d.data.integer("total")
}

func (d Domains) Page() optional.Value[int] {
	return d.data.integer("page")
}

func (d Domains) Domains() optional.Value[[]string] {
	return d.data.strings("domains")
}

// Carrier is a mobile operator of IP address.
type Carrier struct {
	data payload
}

func (c Carrier) Name() optional.Value[string] {
	return c.data.str("name")
}

func (c Carrier) MCC() optional.Value[string] {
	return c.data.str("mcc")
}

func (c Carrier) MNC() optional.Value[string] {
	return c.data.str("mnc")
}

type Continent struct {
	data payload
}

func (c Continent) Code() optional.Value[string] {
	return c.data.str("code")
}

func (c Continent) Name() optional.Value[string] {
	return c.data.str("name")
}

type CountryFlag struct {
	data payload
}

func (c CountryFlag) Emoji() optional.Value[string] {
	return c.data.str("emoji")
}

// Unicode is a string like "U+1F1FA U+1F1F8".
func (c CountryFlag) Unicode() optional.Value[string] {
	return c.data.str("unicode")
}

type CountryCurrency struct {
	data payload
}

func (c CountryCurrency) Code() optional.Value[string] {
	return c.data.str("code")
}

func (c CountryCurrency) Symbol() optional.Value[string] {
	return c.data.str("symbol")
}
