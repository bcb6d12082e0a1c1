package common

import "github.com/tesserakv/kvcore/lib/logging"

// Logger is the shared logger for every rpc subpackage (transports,
// server, serializers). There is no raft cluster here to configure
// per-subsystem loggers for, so a single shared *zap.SugaredLogger
// covers the whole package.
var Logger = logging.CreateLogger(logging.SubsystemRPC)
