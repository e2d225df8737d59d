package types

type InscriberInterface interface {
	Close() error
	GetProgramID() string
	Airdrop(address string, lamports uint64) error
	GetBalance(address string) (uint64, error)
	Transfer(bill *TransferBill, privateKey string) (string, error)
	TransferBatch(bills []*TransferBill, privateKey string) (string, error)
	CreateShards(privateKey string) (int, error)
	GetShard(shardNumber uint8) (*ShardInfo, error)
	Inscribe(req *InscribeRequest, privateKey string) (*InscribeResponse, error)
	GetInscription(address string) (*InscriptionInfo, error)
	GetInscriptionData(address string) ([]byte, error)
	AddAuthority(address, newAuthority, privateKey string) error
	RemoveAuthority(address, privateKey string) error
	CloseInscription(address, tag, privateKey string) error
	Cost(size int) *CostResponse
}
