/*
Package cli provides command-line utilities shared by the callisto command.

Exit Codes:

Command errors map to process exit codes through ExitCode. Errors that
implement the ExitCoder interface choose their own code; everything else
exits 1:

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}

Signal Handling:

For watch mode, SetupSignalHandler returns a context cancelled on
SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should stop on shutdown
*/
package cli
