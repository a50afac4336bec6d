package addrbook

import "errors"

// 公共错误定义
var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("nil config")

	// ErrNilPublicKey 公钥为空
	ErrNilPublicKey = errors.New("nil public key")

	// ErrEmptyPeerID 节点标识为空
	ErrEmptyPeerID = errors.New("empty peer id")
)
