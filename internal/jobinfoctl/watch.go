package jobinfoctl

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/renderfarm/jobinfo/internal/common/logging"
	"github.com/renderfarm/jobinfo/internal/jobinfo/configuration"
	"github.com/renderfarm/jobinfo/internal/jobinfo/metrics"
	"github.com/renderfarm/jobinfo/internal/jobinfo/resolver"
)

// Watch reloads the settings whenever one of the files changes, until ctx is done.
// If args names a host, the publish is resolved again after every accepted reload.
func (a *App) Watch(ctx context.Context, args PublishArgs) error {
	registry := prometheus.NewRegistry()
	if err := logging.ConfigureLogging(a.Params.Logging, registry); err != nil {
		return err
	}
	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	req, err := args.request()
	if err != nil {
		return err
	}
	m := metrics.New()
	if err := registry.Register(m); err != nil {
		return err
	}
	service, err := resolver.NewService(cfg, m, resolver.DefaultMatchCacheSize)
	if err != nil {
		return err
	}

	resolve := func() {
		if args.HostName == "" {
			return
		}
		info, err := service.Resolve(req)
		if err != nil {
			fmt.Fprintf(a.Out, "# resolution failed: %s\n", err)
			return
		}
		fmt.Fprintf(a.Out, "# generation %d\n", info.Generation)
		if err := a.printJobInfo(info, args.Fields); err != nil {
			log.WithError(err).Error("Failed to print job info")
		}
	}
	resolve()

	configuration.Watch(ctx, a.Params.SettingsFiles, func(cfg *configuration.Config, err error) {
		service.Reload(cfg, err)
		if err == nil {
			resolve()
		}
	})
	log.WithField("files", a.Params.SettingsFiles).Info("Watching settings")

	<-ctx.Done()
	log.WithField("generation", service.Snapshot().Generation).Info("Stopped watching settings")
	return nil
}
