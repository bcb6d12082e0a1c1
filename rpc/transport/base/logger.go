package base

import "github.com/tesserakv/kvcore/rpc/common"

// Logger is shared by the server and client base transports.
var Logger = common.Logger
