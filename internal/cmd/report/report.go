package report

// Cmd groups the report commands.
type Cmd struct {
	Download DownloadCmd `cmd:"" help:"Download the usage report of the signed-in user."`
}
