package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"asp_listings/listing"
	"asp_listings/services"
)

var listOpts struct {
	kind      string
	search    string
	bucket    string
	propType  string
	beds      string
	furnished string
	developer string
	sort      string
	pages     int
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print listings of one kind as a table",
	Long: `Fetch listings page by page and print the ones matching the filters.
Price bucket, furnished, developer and sort are applied to the loaded pages;
the remaining filters are sent to PropFusion when the kind supports them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := browserFor(listOpts.kind)
		if err != nil {
			return err
		}
		q, err := listQuery()
		if err != nil {
			return err
		}

		req, _, err := b.SetQuery(q)
		if err != nil {
			return err
		}

		spin, _ := pterm.DefaultSpinner.WithWriter(os.Stderr).Start(fmt.Sprintf("Fetching %s", strings.ToLower(b.Name())))
		ctx := cmd.Context()
		for pages := 0; ; pages++ {
			if err := b.Run(ctx, req); err != nil {
				stopSpinner(spin, false, "Fetch failed")
				return err
			}
			if listOpts.pages > 0 && pages+1 >= listOpts.pages {
				break
			}
			next, ok := b.LoadMore()
			if !ok {
				break
			}
			req = next
		}

		st := b.Status()
		stopSpinner(spin, true, fmt.Sprintf("Loaded %d of %d %s", st.Loaded, st.Total, strings.ToLower(b.Name())))

		renderRows(b.Rows())
		if st.HasMore {
			pterm.Info.Printfln("More results available; raise --pages to load them")
		}
		return nil
	},
}

func listQuery() (listing.Query, error) {
	beds, err := listing.ParseBedrooms(listOpts.beds)
	if err != nil {
		return listing.Query{}, err
	}
	return listing.Query{
		Search:       strings.TrimSpace(listOpts.search),
		PriceBucket:  listOpts.bucket,
		PropertyType: strings.ToUpper(listOpts.propType),
		Bedrooms:     beds,
		Furnished:    listOpts.furnished,
		Developer:    listOpts.developer,
		Sort:         listing.SortOrder(listOpts.sort),
	}, nil
}

func stopSpinner(spin *pterm.SpinnerPrinter, ok bool, msg string) {
	if spin == nil {
		return
	}
	if ok {
		spin.Success(msg)
	} else {
		spin.Fail(msg)
	}
}

func renderRows(rows []services.Row) {
	if len(rows) == 0 {
		pterm.Info.Println("No listings match the current filters.")
		return
	}

	data := pterm.TableData{{"ID", "TITLE", "LOCATION", "PRICE", "BEDS", "AREA", "STATUS"}}
	for _, r := range rows {
		var badges []string
		for _, b := range r.Badges {
			badges = append(badges, b.Text)
		}
		data = append(data, []string{r.ID, r.Title, r.Location, r.Price, r.Beds, r.Area, strings.Join(badges, ", ")})
	}

	if err := pterm.DefaultTable.WithBoxed(true).WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Warning.Printfln("Failed to render table: %v", err)
		for _, row := range data[1:] {
			pterm.Println(strings.Join(row, "\t"))
		}
	}
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOpts.kind, "kind", "k", "properties", "Listing kind (properties, rentals, projects)")
	f.StringVarP(&listOpts.search, "search", "s", "", "Match community, title or developer")
	f.StringVar(&listOpts.bucket, "bucket", "", "Price bucket, e.g. 1-2m or 100-200k")
	f.StringVar(&listOpts.propType, "type", "", "Property type (APARTMENT, VILLA, PENTHOUSE, TOWNHOUSE)")
	f.StringVar(&listOpts.beds, "beds", "", "Bedrooms, 0 for studio")
	f.StringVar(&listOpts.furnished, "furnished", "", "Furnishing (yes, no, partly)")
	f.StringVar(&listOpts.developer, "developer", "", "Developer name")
	f.StringVar(&listOpts.sort, "sort", "", "Sort order (newest, price-low, price-high, size-large, popular, handover-soon)")
	f.IntVar(&listOpts.pages, "pages", 1, "Pages to load; 0 loads every page")
}
