package deeplink

import (
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
)

type Format string

const (
	FormatSimple Format = "simple"
	FormatConfig Format = "config"
)

// Sources recorded on flights whose link was built rather than found
const (
	SourceFallback       = "fallback"
	SourceFallbackConfig = "fallback_config"
)

// placeholder ids used in config ids when a segment lacks the value
const (
	placeholderOrigin      = "9970"
	placeholderDestination = "10413"
	placeholderCarrier     = "31896"
)

var (
	carrierInName   = regexp.MustCompile(`\(([A-Z0-9]{2})\)`)
	carrierInNumber = regexp.MustCompile(`^([A-Z0-9]{2})`)
	clockTime       = regexp.MustCompile(`\d{2}:\d{2}`)
)

// Synthesizer resolves the booking link of a flight
type Synthesizer struct {
	Format Format
	TLD    string
	Policy Policy

	mu  sync.Mutex
	rng *rand.Rand
	log *logger.Logger
}

type Option func(*Synthesizer)

// WithRand fixes the random source used for last-resort config ids
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

func WithPolicy(p Policy) Option {
	return func(s *Synthesizer) { s.Policy = p }
}

func NewSynthesizer(cfg config.DeeplinkConfig, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		Format: FormatSimple,
		TLD:    DefaultTLD,
		Policy: DefaultPolicy(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    logger.Named("deeplink"),
	}
	if strings.EqualFold(cfg.Format, string(FormatConfig)) {
		s.Format = FormatConfig
	}
	if cfg.TLD != "" {
		s.TLD = strings.TrimPrefix(strings.ToLower(cfg.TLD), ".")
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Embedded reports whether the flight carries a link found in the upstream payload
func Embedded(f core.Flight) bool {
	return IsValid(f.DeepLink) && !strings.HasPrefix(f.DeepLinkSource, SourceFallback)
}

// Resolve prefers the embedded link and otherwise builds one in the configured format.
// The result is always an absolute http(s) URL.
func (s *Synthesizer) Resolve(f core.Flight, p core.SearchParams) (string, string) {
	if Embedded(f) {
		return f.DeepLink, f.DeepLinkSource
	}
	s.log.Debug().Str("flight", f.ID).Str("format", string(s.Format)).Msg("no embedded deeplink, building fallback")
	if s.Format == FormatConfig {
		return s.Config(f, p, s.Domain(f, p)), SourceFallbackConfig
	}
	return s.Simple(f, p), SourceFallback
}

// Variants builds every link flavour for the deeplink dump
func (s *Synthesizer) Variants(f core.Flight, p core.SearchParams) core.DeeplinkSet {
	standard := s.Simple(f, p)
	if Embedded(f) {
		standard = f.DeepLink
	}
	return core.DeeplinkSet{
		ID:             f.ID,
		StandardLink:   standard,
		ConfigLink:     s.Config(f, p, s.Domain(f, p)),
		ThaiConfigLink: s.Config(f, p, ThaiTLD),
		OriginalLink:   f.DeepLink,
	}
}

// Domain applies the route policy to the flight's first and last airports
func (s *Synthesizer) Domain(f core.Flight, p core.SearchParams) string {
	origin, destination := routeCodes(f, p)
	return s.Policy.TLD(origin, destination, s.TLD)
}

// Simple builds a /transport/flights search URL
func (s *Synthesizer) Simple(f core.Flight, p core.SearchParams) string {
	date := core.NormalizeDate(p.DepartureDate)
	path := fmt.Sprintf("https://www.skyscanner.%s/transport/flights/%s/%s/%s",
		s.Domain(f, p), pathCode(p.OriginID, "PARI"), pathCode(p.DestinationID, "LOND"), date)

	rtn := "0"
	if p.RoundTrip() {
		path += "/" + core.NormalizeDate(p.ReturnDate)
		rtn = "1"
	}

	q := url.Values{}
	q.Set("adults", strconv.Itoa(adults(p)))
	q.Set("cabinclass", cabin(p))
	q.Set("rtn", rtn)
	q.Set("preferDirects", "true")
	if codes := carrierCodes(f); len(codes) > 0 {
		q.Set("carriers", strings.Join(codes, ","))
	}
	if stops := stopCodes(f); len(stops) > 0 {
		q.Set("stops", strings.Join(stops, ","))
	}
	if f.SessionID != "" {
		q.Set("sessionId", f.SessionID)
	}
	if f.ID != "" {
		q.Set("flightId", f.ID)
	}
	if p.OriginEntityID != "" {
		q.Set("originEntityId", p.OriginEntityID)
	}
	if p.DestinationEntityID != "" {
		q.Set("destinationEntityId", p.DestinationEntityID)
	}
	if f.Price.Amount > 0 {
		q.Set("price", strconv.FormatFloat(f.Price.Amount, 'f', -1, 64))
		if f.Price.Currency != "" {
			q.Set("currency", f.Price.Currency)
		}
	}
	return path + "?" + q.Encode()
}

// Config builds the /config/{configId} URL on the given domain
func (s *Synthesizer) Config(f core.Flight, p core.SearchParams, tld string) string {
	date := core.CompactDate(p.DepartureDate)
	base := fmt.Sprintf("https://www.skyscanner.%s/transport/flights/%s/%s/%s/config/%s",
		tld, pathCode(p.OriginID, "PARI"), pathCode(p.DestinationID, "LOND"), date, url.PathEscape(s.ConfigID(f, date)))

	q := url.Values{}
	q.Set("adultsv2", strconv.Itoa(adults(p)))
	q.Set("cabinclass", cabin(p))
	q.Set("childrenv2", "")
	q.Set("ref", "home")
	q.Set("rtn", "0")
	q.Set("preferdirects", "false")
	q.Set("outboundaltsenabled", "false")
	q.Set("inboundaltsenabled", "false")
	return base + "?" + q.Encode()
}

// ConfigID is the upstream id when real, else one derived from the first leg,
// else a random last resort
func (s *Synthesizer) ConfigID(f core.Flight, compactDate string) string {
	if f.ID != "" && !f.SyntheticID {
		return f.ID
	}
	if len(f.Legs) > 0 {
		leg := f.Legs[0]
		first, ok := leg.First()
		if ok {
			last, _ := leg.Last()
			carrier := placeholderCarrier
			if codes := segmentCarrierCodes(leg.Segments); len(codes) > 0 {
				carrier = codes[0]
			}
			return fmt.Sprintf("%s-%s%s--%s-%d-%s-%s%s",
				orDefault(first.Departure.Code, placeholderOrigin), compactDate, hhmm(first.Departure.Time),
				carrier, len(leg.Segments)-1,
				orDefault(last.Arrival.Code, placeholderDestination), compactDate, hhmm(last.Arrival.Time))
		}
	}

	s.mu.Lock()
	n := s.rng.Intn(10000)
	s.mu.Unlock()
	return fmt.Sprintf("flight-%d-%s", n, compactDate)
}

func hhmm(ts string) string {
	return strings.Replace(clockTime.FindString(ts), ":", "", 1)
}

func carrierCodes(f core.Flight) []string {
	var segs []core.Segment
	for _, l := range f.Legs {
		segs = append(segs, l.Segments...)
	}
	return segmentCarrierCodes(segs)
}

// segmentCarrierCodes reads "(AF)" from carrier names, else the flight number prefix
func segmentCarrierCodes(segs []core.Segment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range segs {
		code := ""
		if m := carrierInName.FindStringSubmatch(s.Carrier); m != nil {
			code = m[1]
		} else if m := carrierInNumber.FindStringSubmatch(s.FlightNumber); m != nil {
			code = m[1]
		}
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// stopCodes lists the intermediate arrival airports of every leg
func stopCodes(f core.Flight) []string {
	var out []string
	for _, l := range f.Legs {
		for i := 0; i < len(l.Segments)-1; i++ {
			if c := l.Segments[i].Arrival.Code; c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

func routeCodes(f core.Flight, p core.SearchParams) (string, string) {
	origin, destination := p.OriginID, p.DestinationID
	if len(f.Legs) > 0 {
		if first, ok := f.Legs[0].First(); ok && first.Departure.Code != "" {
			origin = first.Departure.Code
		}
		if last, ok := f.Legs[0].Last(); ok && last.Arrival.Code != "" {
			destination = last.Arrival.Code
		}
	}
	return origin, destination
}

func adults(p core.SearchParams) int {
	if p.Adults < 1 {
		return 1
	}
	return p.Adults
}

func cabin(p core.SearchParams) string {
	if p.Cabin == "" {
		return string(core.CabinEconomy)
	}
	return string(p.Cabin)
}

func pathCode(code, def string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return def
	}
	return url.PathEscape(code)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
