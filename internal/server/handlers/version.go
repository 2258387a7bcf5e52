package handlers

import (
	"net/http"
	"runtime"
	"sync"

	"github.com/fulmenhq/gofulmen/crucible"

	"github.com/b64forge/b64forge/internal/codec"
	"github.com/b64forge/b64forge/internal/config"
)

var (
	buildMu   sync.RWMutex
	buildInfo = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}
)

// SetVersionInfo records the ldflags-injected build metadata reported by
// GET /version.
func SetVersionInfo(version, commit, buildDate string) {
	buildMu.Lock()
	defer buildMu.Unlock()
	buildInfo = BuildInfo{Version: version, Commit: commit, BuildDate: buildDate}
}

func currentBuild() BuildInfo {
	buildMu.RLock()
	defer buildMu.RUnlock()
	info := buildInfo
	info.Name = config.AppName
	info.GoVersion = runtime.Version()
	return info
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	App          BuildInfo         `json:"app"`
	Codec        CodecInfo         `json:"codec"`
	Dependencies map[string]string `json:"dependencies"`
	Platform     string            `json:"platform"`
}

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// CodecInfo describes the alphabet and the defaults applied by the codec
// endpoints.
type CodecInfo struct {
	Alphabet      string `json:"alphabet"`
	Padding       string `json:"padding"`
	PadByDefault  bool   `json:"pad_by_default"`
	Policy        string `json:"policy"`
	MaxInputBytes int64  `json:"max_input_bytes"`
}

// Info reports the settings h applies when a request does not override them.
func (h *CodecHandler) Info() CodecInfo {
	return CodecInfo{
		Alphabet:      codec.Alphabet(),
		Padding:       string(codec.PadChar),
		PadByDefault:  h.encoder.Padding,
		Policy:        h.decoder.Policy.String(),
		MaxInputBytes: h.maxBytes,
	}
}

// NewVersionHandler serves build metadata alongside the codec settings.
func NewVersionHandler(info CodecInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps := crucible.GetVersion()
		writeJSON(w, http.StatusOK, VersionResponse{
			App:   currentBuild(),
			Codec: info,
			Dependencies: map[string]string{
				"gofulmen": deps.Gofulmen,
				"crucible": deps.Crucible,
			},
			Platform: runtime.GOOS + "/" + runtime.GOARCH,
		})
	}
}
