package auth

import (
	"github.com/cli/browser"
	"github.com/pterm/pterm"
)

// Navigator sends the user agent to an absolute URL. It is a full navigation,
// control only returns to this process through the callback.
type Navigator interface {
	Navigate(url string) error
}

// BrowserNavigator opens the system browser, printing the URL as a fallback.
type BrowserNavigator struct{}

// Navigate implements Navigator.
func (BrowserNavigator) Navigate(url string) error {
	pterm.Info.Println("Opening browser for authentication...")
	pterm.Info.Printfln("If browser doesn't open, visit: %s", url)

	if err := browser.OpenURL(url); err != nil {
		pterm.Warning.Printfln("Could not open browser automatically: %v", err)
	}
	return nil
}

// PrintNavigator only prints the URL. It is used when no local callback
// listener runs and the user completes the redirect by hand.
type PrintNavigator struct{}

// Navigate implements Navigator.
func (PrintNavigator) Navigate(url string) error {
	pterm.Info.Println("Open the following URL in a browser and sign in:")
	pterm.Println(url)
	return nil
}
