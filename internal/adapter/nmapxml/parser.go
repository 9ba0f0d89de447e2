// Package nmapxml parses nmap XML run files. Network-facing vulnerability
// findings are carried by NSE script output on open ports (e.g. the ssl-* and
// http-* vuln scripts), one RawFinding per script result.
package nmapxml

import (
	"fmt"
	"strings"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	"bytemomo/remora/internal/domain"
)

const toolName = "nmap"

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Tool() domain.SourceTool { return domain.ToolDAST }

func (Adapter) Format() string { return "xml" }

// Parse reads one nmap XML run via the nmap library's own parser.
func (Adapter) Parse(sourceFile string, data []byte) ([]domain.RawFinding, error) {
	var run nmap.Run
	if err := nmap.Parse(data, &run); err != nil {
		return nil, &domain.ParseError{SourceFile: sourceFile, Err: err}
	}

	now := time.Now().UTC()
	var findings []domain.RawFinding
	idx := 0
	for _, host := range run.Hosts {
		addr := pickHostAddress(host)
		if addr == "" {
			continue
		}
		for _, port := range host.Ports {
			if port.State.State != "open" {
				continue
			}
			for _, script := range port.Scripts {
				findings = append(findings, domain.RawFinding{
					SourceTool:  domain.ToolDAST,
					ToolName:    toolName,
					SourceID:    fmt.Sprintf("%s:%d/%s", addr, port.ID, script.ID),
					Type:        script.ID,
					Severity:    port.State.State,
					Confidence:  scriptConfidence(script.Output),
					Title:       script.ID,
					Description: fmt.Sprintf("nmap script %s on %s/%d (%s)", script.ID, port.Protocol, port.ID, port.Service.Name),
					Evidence:    strings.TrimSpace(script.Output),
					URL:         endpointURL(addr, port),
					SourceFile:  sourceFile,
					SourceIndex: idx,
					IngestedAt:  now,
				})
				idx++
			}
		}
	}
	return findings, nil
}

func pickHostAddress(h nmap.Host) string {
	for _, a := range h.Addresses {
		if a.Addr != "" {
			return a.Addr
		}
	}
	for _, hn := range h.Hostnames {
		if hn.Name != "" {
			return hn.Name
		}
	}
	return ""
}

func endpointURL(addr string, port nmap.Port) string {
	scheme := "tcp"
	switch {
	case strings.Contains(port.Service.Name, "https"), strings.Contains(port.Service.Name, "ssl"):
		scheme = "https"
	case strings.Contains(port.Service.Name, "http"):
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, addr, port.ID)
}

func scriptConfidence(output string) string {
	if strings.Contains(output, "VULNERABLE") {
		return "vulnerable"
	}
	return "likely_vulnerable"
}
