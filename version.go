package sat

// Version is the release of this client library.
const Version = "1.0.0"

// DefaultSDKVersion identifies this library in the X-Sat-Sdk-Version header.
const DefaultSDKVersion = "go-sat@" + Version
