package explorer

import (
	"fmt"
	"log"

	"github.com/mirroir/uiexplorer/utils"
)

// Warnf logs a non-fatal condition the run continues past: a bad
// component-file definition, a paused step, anything
// spec §7 classifies as "degrade, don't abort". Colorized the way the
// teacher's CLI colorizes its own status lines (utils.DecorateText).
func Warnf(format string, args ...interface{}) {
	log.Println(utils.DecorateText(fmt.Sprintf(format, args...), utils.ErrorMessage))
}

// Infof logs routine step-by-step progress.
func Infof(format string, args ...interface{}) {
	log.Println(utils.DecorateText(fmt.Sprintf(format, args...), utils.StatusMessage))
}
