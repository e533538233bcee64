package content

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/galaxy/internal/config"
)

// BrieferFromEnv returns a Remote when GALAXY_BRIEFING_URL is set and the local
// library otherwise. GALAXY_BRIEFING_TIMEOUT bounds each remote request.
func BrieferFromEnv(lib *Library, rnd Rand, logger *log.Logger) Briefer {
	url := config.GetEnv("GALAXY_BRIEFING_URL", "")
	if url == "" {
		return NewLocal(lib, rnd)
	}
	logger.Info("using remote briefings", "url", url)
	return NewRemote(url, lib, RemoteOptions{
		Timeout: config.GetEnvDuration("GALAXY_BRIEFING_TIMEOUT", DefaultRemoteTimeout),
		Logger:  logger,
	})
}
