package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/inspector"
)

// spacingCommand prints the spacings of a selection in a frames file.
func (c *CLI) spacingCommand() *cobra.Command {
	var selectID, focusID string

	cmd := &cobra.Command{
		Use:   "spacing [frames.json]",
		Short: "Print the distances from a selected element to its neighbours",
		Long: `Print the distances from a selected element to its neighbours.

With --select alone, each edge of the selected element is measured against
the nearest facing edge among its siblings and ancestors. Adding --focus
measures directly between the selected and the focused element.`,
		Example: `  framescope spacing card.json --select title
  framescope spacing card.json --select title --focus body`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if selectID == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--select is required")
			}
			return c.runSpacing(cmd.Context(), args[0], selectID, focusID)
		},
	}

	cmd.Flags().StringVar(&selectID, "select", "", "id of the selected element")
	cmd.Flags().StringVar(&focusID, "focus", "", "id of the focused element")

	return cmd
}

func (c *CLI) runSpacing(ctx context.Context, input, selectID, focusID string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := c.openInspection(ctx, cfg, input)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.selectNodes(ctx, selectID, focusID); err != nil {
		return err
	}

	sel := s.ctrl.Selection()
	spacings := s.ctrl.Spacings()

	fmt.Println(StyleTitle.Render("Spacing") + "  " + formatSelection(sel))
	printKeyValue("frame", sel.Selected.String())
	if sel.State == inspector.SelectedWithFocus {
		printKeyValue("focus", sel.Focused.String())
	}
	if len(spacings) == 0 {
		printWarning("no neighbours found")
		return nil
	}
	fmt.Println(spacingTable(spacings))
	printStats(s.ctrl.Set().Len(), len(spacings), sel)
	return nil
}
