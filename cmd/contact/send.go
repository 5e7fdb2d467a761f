package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/mbsnyc/mbsnyc-api/config"
	"github.com/mbsnyc/mbsnyc-api/internal/contactform"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
	"github.com/spf13/cobra"
)

type sendOptions struct {
	request       models.ContactRequest
	delivery      string
	backendURL    string
	mailtoAddress string
	open          bool
}

func newSendCmd(a *app) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fill and submit the contact form",
		Long: `Fill the contact form and submit it.

Delivery "http" posts JSON to {backend-url}/api/contact and succeeds only on 200.
Delivery "mailto" prints a mailto: URI (and opens it with --open); it always succeeds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			contactCfg := a.cfg.Contact
			if cmd.Flags().Changed("delivery") {
				contactCfg.Delivery = opts.delivery
			}
			if cmd.Flags().Changed("backend-url") {
				contactCfg.BackendURL = opts.backendURL
			}
			if cmd.Flags().Changed("mailto-address") {
				contactCfg.MailtoAddress = opts.mailtoAddress
			}
			return a.runSend(cmd, contactCfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.request.Name, "name", "", "your name")
	f.StringVar(&opts.request.Email, "email", "", "your email address")
	f.StringVar(&opts.request.Company, "company", "", "your company")
	f.StringVar(&opts.request.Message, "message", "", "your message")
	f.StringVar(&opts.delivery, "delivery", config.DeliveryHTTP, "delivery strategy: http or mailto")
	f.StringVar(&opts.backendURL, "backend-url", "", "backend base URL (overrides BACKEND_URL)")
	f.StringVar(&opts.mailtoAddress, "mailto-address", "", "mailto recipient (overrides CONTACT_MAILTO_ADDRESS)")
	f.BoolVar(&opts.open, "open", false, "open the mailto: URI with the system handler")

	return cmd
}

func (a *app) runSend(cmd *cobra.Command, contactCfg config.ContactConfig, opts sendOptions) error {
	out := cmd.OutOrStdout()

	navigator := contactform.NavigatorFunc(func(uri string) {
		fmt.Fprintln(out, mutedStyle.Render("Opening email client:"))
		fmt.Fprintln(out, uri)
		if opts.open {
			if err := a.openURL(uri); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Could not open email client: "+err.Error()))
			}
		}
	})

	submitter, err := contactform.NewSubmitter(contactCfg, a.httpClient, navigator)
	if err != nil {
		return err
	}

	form := contactform.NewForm(submitter, contactform.NotifierFunc(func(n contactform.Notification) {
		printNotification(out, n)
	}))
	form.Fill(opts.request)

	if err := form.Submit(cmd.Context()); err != nil {
		if errors.Is(err, contactform.ErrIncomplete) {
			return fmt.Errorf("%w: --name, --email, --company and --message are all required", err)
		}
		return err
	}
	return nil
}

func printNotification(w io.Writer, n contactform.Notification) {
	style := successStyle
	if n.Kind == contactform.NotificationError {
		style = errorStyle
	}
	fmt.Fprintln(w, style.Render(n.Message))
}
