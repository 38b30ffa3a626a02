package cripta

type IKeySchedule interface {
	GenerateRoundKeys(masterKey Bits) (RoundKeys, error)
}

// IRoundFunction computes the Feistel function f(R, K) for one round.
type IRoundFunction interface {
	Apply(right Bits, roundKey Bits) (Bits, error)
}

type ISymmetricCipher interface {
	SetKey(key Bits) error
	EncryptBlock(plainBlock Bits) (Bits, error)
	DecryptBlock(cipherBlock Bits) (Bits, error)
}

// IPadding extends a message to whole 64-bit blocks and removes the extension.
type IPadding interface {
	Pad(data Bits) (Bits, error)
	Unpad(data Bits) (Bits, error)
}
