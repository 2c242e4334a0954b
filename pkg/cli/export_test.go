package cli

// PrintUsers is exported for testing
var PrintUsers = printUsers

// RunServer is exported for testing
var RunServer = runServer

// GetIndexConfig is exported for testing
var GetIndexConfig = getIndexConfig
