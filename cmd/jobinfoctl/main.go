package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/renderfarm/jobinfo/cmd/jobinfoctl/cmd"
	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/common/logging"
)

func main() {
	logging.ConfigureCommandLineLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(farmerrors.ExitCodeFromError(err))
	}
}
