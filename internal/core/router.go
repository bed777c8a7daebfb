package core

import (
	"fmt"
	"strings"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
)

type Router struct {
	cfg            *config.Config
	flightAdapters []FlightAdapter
}

func NewRouter(cfg *config.Config) *Router {
	return &Router{cfg: cfg}
}

func (r *Router) Config() *config.Config { return r.cfg }

func (r *Router) RegisterFlight(a FlightAdapter) {
	r.flightAdapters = append(r.flightAdapters, a)
}

// ActiveFlightAdapters returns the adapters usable in the current mode, live ones first
func (r *Router) ActiveFlightAdapters() []FlightAdapter {
	var live, mock []FlightAdapter
	for _, a := range r.flightAdapters {
		if !r.shouldUse(a.Name()) {
			continue
		}
		if isMockProvider(a.Name()) {
			mock = append(mock, a)
		} else {
			live = append(live, a)
		}
	}
	return append(live, mock...)
}

func (r *Router) shouldUse(name string) bool {
	if pc, ok := r.cfg.Providers[name]; ok && !pc.Enabled {
		return false
	}
	switch r.cfg.Mode {
	case config.ModeMock:
		return isMockProvider(name)
	case config.ModeLive:
		return !isMockProvider(name)
	case config.ModeHybrid:
		if !isMockProvider(name) {
			return r.cfg.ProviderHasCredentials(name)
		}
		return r.noLiveAlternative()
	}
	return false
}

func (r *Router) noLiveAlternative() bool {
	for _, a := range r.flightAdapters {
		if !isMockProvider(a.Name()) && r.cfg.ProviderHasCredentials(a.Name()) {
			return false
		}
	}
	return true
}

func isMockProvider(name string) bool {
	return strings.HasPrefix(name, "mock_")
}

func (r *Router) ProviderInfos() []ProviderInfo {
	var infos []ProviderInfo

	for _, a := range r.flightAdapters {
		info := ProviderInfo{
			Name:         a.Name(),
			Capabilities: a.Capabilities(),
			Tier:         a.Tier(),
		}
		if avail, reason := a.Available(); avail {
			info.Status = "active"
		} else {
			info.Status = "no_credentials"
			info.Reason = reason
		}
		if r.cfg.Mode == config.ModeMock && !isMockProvider(a.Name()) {
			info.Status = "inactive"
			info.Reason = "mode is mock"
		}
		if r.cfg.Mode == config.ModeLive && isMockProvider(a.Name()) {
			info.Status = "inactive"
			info.Reason = "mode is live"
		}
		infos = append(infos, info)
	}

	return infos
}

// Doctor summarizes provider health for the current mode
func (r *Router) Doctor() DoctorReport {
	infos := r.ProviderInfos()

	active := 0
	var issues []string
	for _, p := range infos {
		if p.Status == "active" {
			active++
		} else if p.Status == "no_credentials" {
			issue := p.Name + ": missing credentials"
			if missing := r.cfg.MissingCredentials(p.Name); len(missing) > 0 {
				issue += " " + strings.Join(missing, ", ")
			}
			issues = append(issues, issue)
		}
	}

	summary := fmt.Sprintf("%d/%d providers active (mode=%s)", active, len(infos), r.cfg.Mode)
	if len(issues) > 0 {
		summary += " | issues: " + strings.Join(issues, "; ")
	}
	return DoctorReport{
		Mode:      r.cfg.Mode,
		Providers: infos,
		Healthy:   active > 0,
		Summary:   summary,
	}
}
