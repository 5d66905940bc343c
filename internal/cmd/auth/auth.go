package auth

// Cmd represents the auth command group
type Cmd struct {
	Login    LoginCmd    `cmd:"" help:"Sign in through Keycloak in the browser."`
	Callback CallbackCmd `cmd:"" help:"Complete a manual login with the address the browser was redirected to."`
	Logout   LogoutCmd   `cmd:"" help:"End the session."`
	Status   StatusCmd   `cmd:"" help:"Show the session state."`
}
