package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoyaktube/yyt/internal/app"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/config"
)

// NewModelsCommand creates the models command, which lists what each
// enabled provider currently serves.
func NewModelsCommand(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available from each enabled provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, cfg := range session.Providers {
				fmt.Fprintf(out, "%s:\n", cfg.Name)
				provider, err := session.Factory.GetOrCreate(cfg.Name, session.ModelFor(cfg, ""), config.CredentialsFromEnv(cfg.Name))
				if err != nil {
					fmt.Fprintf(out, "  %s\n", domain.UserMessage(err))
					continue
				}
				models, err := provider.ListModels(cmd.Context())
				if err != nil {
					fmt.Fprintf(out, "  %s\n", domain.UserMessage(err))
					continue
				}
				for _, model := range models {
					marker := " "
					if model == session.ModelFor(cfg, "") {
						marker = "*"
					}
					fmt.Fprintf(out, " %s %s\n", marker, model)
				}
			}
			return nil
		},
	}
}
