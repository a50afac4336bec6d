package addressbook

import "errors"

var (
	// ErrNilPublicKey 未提供本节点公钥
	ErrNilPublicKey = errors.New("addressbook: nil public key")

	// ErrInvalidPublicKey 无法从公钥派生节点标识
	ErrInvalidPublicKey = errors.New("addressbook: invalid public key")
)
