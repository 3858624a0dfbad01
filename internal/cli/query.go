package cli

import (
	"io"

	"github.com/heartmarshall/concept-clarity/internal/app"
	"github.com/heartmarshall/concept-clarity/internal/service/clarity"
)

// newService wires a clarity service for one-shot commands. Logs go to
// stderr so stdout stays clean for --json output.
func (o *rootOptions) newService(stderr io.Writer) (*clarity.Service, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := app.NewStore(cfg.Glossary)
	if err != nil {
		return nil, err
	}
	return clarity.NewService(app.NewLoggerTo(stderr, cfg.Log), store), nil
}
