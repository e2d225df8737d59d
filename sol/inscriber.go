package sol

import (
	"context"
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/sol/inscription"
	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	addressCacheSize = 4096
	shardsPerTx      = 8
)

// Inscriber drives the inscription program on a local bank the way a wallet
// drives it on chain: it builds, signs and submits transactions.
type Inscriber struct {
	ctx       context.Context
	cfg       *types.Config
	log       *zap.SugaredLogger
	programID solana.PublicKey
	bank      *host.Bank
	clock     *Clock
	cache     *cache.Cache[[]byte]
}

func NewInscriber(
	ctx context.Context,
	cfg *types.Config,
	log *zap.SugaredLogger,
) (*Inscriber, error) {
	programID := common.InscriptionProgramID
	if cfg.ProgramID != "" {
		var err error
		if programID, err = solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
			return nil, fmt.Errorf("program id: %w", err)
		}
	}

	var store host.Store
	if cfg.Memory {
		store = host.NewMemoryStore()
	} else {
		ldb, err := host.NewLevelDBStore(cfg.Ledger)
		if err != nil {
			return nil, err
		}
		store = ldb
	}

	cache, err := utils.NewCache(addressCacheSize)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	bank := host.NewBank(store, log)
	bank.Register(programID, inscription.Processor{})
	bank.Register(solana.SystemProgramID, host.SystemProcessor{})

	s := &Inscriber{
		ctx:       ctx,
		cfg:       cfg,
		log:       log,
		programID: programID,
		bank:      bank,
		cache:     cache,
	}
	if cfg.SlotInterval > 0 {
		s.clock = NewClock(ctx, bank, cfg.SlotInterval)
		if err := s.clock.Start(); err != nil {
			_ = bank.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Inscriber) Close() error {
	if s.clock != nil {
		if err := s.clock.Close(); err != nil {
			s.log.Warnw("stop clock", "error", err)
		}
	}
	return s.bank.Close()
}

func (s *Inscriber) GetProgramID() string {
	return s.programID.String()
}

func (s *Inscriber) Bank() *host.Bank {
	return s.bank
}

func (s *Inscriber) chunkSize() int {
	if s.cfg.ChunkSize <= 0 {
		return types.DefaultChunkSize
	}
	return s.cfg.ChunkSize
}

func (s *Inscriber) Airdrop(address string, lamports uint64) error {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return err
	}
	return s.bank.Airdrop(key, lamports)
}

func (s *Inscriber) GetBalance(address string) (uint64, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, err
	}
	acct, err := s.bank.GetAccount(key)
	if errors.Is(err, types.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}

func (s *Inscriber) exists(key solana.PublicKey) bool {
	_, err := s.bank.GetAccount(key)
	return err == nil
}

// CreateShards creates every shard that does not exist yet and reports how
// many were created.
func (s *Inscriber) CreateShards(privateKey string) (int, error) {
	payer, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return 0, err
	}

	var ixs []solana.Instruction
	for n := 0; n < types.ShardCount; n++ {
		address, err := s.shardAddress(uint8(n))
		if err != nil {
			return 0, err
		}
		if s.exists(address) {
			continue
		}
		ix, err := inscription.NewCreateShardInstruction(s.programID, payer.PublicKey(), uint8(n))
		if err != nil {
			return 0, err
		}
		ixs = append(ixs, ix)
	}

	created := 0
	for _, batch := range lo.Chunk(ixs, shardsPerTx) {
		if _, err := s.send(payer, nil, batch...); err != nil {
			return created, err
		}
		created += len(batch)
	}
	s.log.Infow("shards", "created", created)
	return created, nil
}

func (s *Inscriber) GetShard(shardNumber uint8) (*types.ShardInfo, error) {
	address, err := s.shardAddress(shardNumber)
	if err != nil {
		return nil, err
	}
	acct, err := s.bank.GetAccount(address)
	if err != nil {
		return nil, err
	}
	shard, err := inscription.DeserializeInscriptionShard(acct.Data)
	if err != nil {
		return nil, err
	}
	return &types.ShardInfo{
		Address:     address.String(),
		ShardNumber: shard.ShardNumber,
		Count:       shard.Count,
	}, nil
}

type transaction struct {
	instructions []solana.Instruction
	signers      []solana.PrivateKey
}

// Inscribe writes req.Payload into a new inscription, or into the tagged
// associated inscription of req.Parent, one chunk per transaction.
func (s *Inscriber) Inscribe(req *types.InscribeRequest, privateKey string) (*types.InscribeResponse, error) {
	payer, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return nil, err
	}

	payload := req.Payload
	compressed := req.Compress || s.cfg.Compress
	if compressed {
		if payload, err = Compress(payload); err != nil {
			return nil, err
		}
	}

	var (
		txs       []transaction
		parent    solana.PublicKey
		target    solana.PublicKey
		tag       string
		authority solana.PublicKey
	)
	if req.Parent != "" {
		if req.Tag == "" {
			return nil, fmt.Errorf("a parent inscription needs a tag: %w", types.ErrInvalidArgument)
		}
		if parent, err = solana.PublicKeyFromBase58(req.Parent); err != nil {
			return nil, err
		}
		tag = req.Tag
		if target, err = s.associatedAddress(parent, tag); err != nil {
			return nil, err
		}
		if !s.exists(target) {
			ix, err := inscription.NewInitializeAssociatedInscriptionInstruction(s.programID, parent, payer.PublicKey(), authority, tag)
			if err != nil {
				return nil, err
			}
			txs = append(txs, transaction{instructions: []solana.Instruction{ix}})
		}
	} else {
		shard := req.Shard
		if shard < 0 {
			shard = lo.Sample(lo.Range(types.ShardCount))
		}
		if shard >= types.ShardCount {
			return nil, fmt.Errorf("shard %d: %w", shard, types.ErrInvalidArgument)
		}
		account := solana.NewWallet().PrivateKey
		parent, target = account.PublicKey(), account.PublicKey()
		n := uint8(shard)
		tx := transaction{signers: []solana.PrivateKey{account}}
		shardAddress, err := s.shardAddress(n)
		if err != nil {
			return nil, err
		}
		if !s.exists(shardAddress) {
			ix, err := inscription.NewCreateShardInstruction(s.programID, payer.PublicKey(), n)
			if err != nil {
				return nil, err
			}
			tx.instructions = append(tx.instructions, ix)
		}
		ix, err := inscription.NewInitializeInstruction(s.programID, parent, payer.PublicKey(), authority, &n)
		if err != nil {
			return nil, err
		}
		tx.instructions = append(tx.instructions, ix)
		txs = append(txs, tx)
	}

	size := s.chunkSize()
	for i, chunk := range lo.Chunk(payload, size) {
		ix, err := inscription.NewWriteDataInstruction(s.programID, parent, payer.PublicKey(), authority, tag, uint64(i*size), chunk)
		if err != nil {
			return nil, err
		}
		txs = append(txs, transaction{instructions: []solana.Instruction{ix}})
	}

	metadata, err := s.metadataAddress(parent)
	if err != nil {
		return nil, err
	}
	resp := &types.InscribeResponse{
		InscriptionAccount: target.String(),
		MetadataAccount:    metadata.String(),
		Size:               len(payload),
		Compressed:         compressed,
		Transactions:       len(txs),
	}

	if req.DryRun {
		for _, tx := range txs {
			for _, ix := range tx.instructions {
				resp.Instructions = append(resp.Instructions, Render(ix))
			}
		}
		return resp, nil
	}

	for i, tx := range txs {
		if _, err := s.send(payer, tx.signers, tx.instructions...); err != nil {
			return nil, fmt.Errorf("transaction %d of %d: %w", i+1, len(txs), err)
		}
	}

	info, err := s.GetInscription(parent.String())
	if err != nil {
		return nil, err
	}
	resp.Rank = info.Rank
	s.log.Infow("inscribed", "inscription", resp.InscriptionAccount, "size", resp.Size, "transactions", resp.Transactions, "rank", resp.Rank)
	return resp, nil
}

// Render draws an instruction as a tree.
func Render(ix solana.Instruction) string {
	enc, ok := ix.(interface{ EncodeToTree(treeout.Branches) })
	if !ok {
		return ix.ProgramID().String()
	}
	tree := treeout.New("")
	enc.EncodeToTree(tree)
	return tree.String()
}

func (s *Inscriber) GetInscription(address string) (*types.InscriptionInfo, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, err
	}
	metadataAddress, err := s.metadataAddress(key)
	if err != nil {
		return nil, err
	}
	acct, err := s.bank.GetAccount(metadataAddress)
	if err != nil {
		return nil, err
	}
	m, err := inscription.DeserializeInscriptionMetadata(acct.Data)
	if err != nil {
		return nil, err
	}

	size := 0
	if data, err := s.bank.GetAccount(key); err == nil {
		size = len(data.Data)
	}
	info := &types.InscriptionInfo{
		InscriptionAccount: key.String(),
		MetadataAccount:    metadataAddress.String(),
		Key:                m.Key.String(),
		DataType:           m.DataType.String(),
		Rank:               m.InscriptionRank,
		Ranked:             m.Ranked(),
		UpdateAuthorities: lo.Map(m.UpdateAuthorities, func(k solana.PublicKey, _ int) string {
			return k.String()
		}),
		AssociatedTags: lo.Map(m.AssociatedInscriptions, func(a inscription.AssociatedInscription, _ int) string {
			return a.Tag
		}),
		Size: size,
	}
	if m.Mint != nil {
		info.Mint = m.Mint.String()
	}
	return info, nil
}

func (s *Inscriber) GetInscriptionData(address string) ([]byte, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, err
	}
	acct, err := s.bank.GetAccount(key)
	if err != nil {
		return nil, err
	}
	if !acct.Owner.Equals(s.programID) {
		return nil, fmt.Errorf("%s: %w", key, types.ErrIncorrectOwner)
	}
	return acct.Data, nil
}

func (s *Inscriber) AddAuthority(address, newAuthority, privateKey string) error {
	payer, target, err := parseTarget(address, privateKey)
	if err != nil {
		return err
	}
	authority, err := solana.PublicKeyFromBase58(newAuthority)
	if err != nil {
		return err
	}
	ix, err := inscription.NewAddAuthorityInstruction(s.programID, target, payer.PublicKey(), solana.PublicKey{}, authority)
	if err != nil {
		return err
	}
	_, err = s.send(payer, nil, ix)
	return err
}

func (s *Inscriber) RemoveAuthority(address, privateKey string) error {
	payer, target, err := parseTarget(address, privateKey)
	if err != nil {
		return err
	}
	ix, err := inscription.NewRemoveAuthorityInstruction(s.programID, target, payer.PublicKey(), solana.PublicKey{})
	if err != nil {
		return err
	}
	_, err = s.send(payer, nil, ix)
	return err
}

// CloseInscription closes an inscription, or only its associated inscription
// when tag is set, refunding the rent to the signer.
func (s *Inscriber) CloseInscription(address, tag, privateKey string) error {
	payer, target, err := parseTarget(address, privateKey)
	if err != nil {
		return err
	}
	ix, err := inscription.NewCloseInstruction(s.programID, target, payer.PublicKey(), solana.PublicKey{}, tag)
	if err != nil {
		return err
	}
	_, err = s.send(payer, nil, ix)
	return err
}

func parseTarget(address, privateKey string) (solana.PrivateKey, solana.PublicKey, error) {
	payer, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	target, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return payer, target, nil
}

// Cost estimates what inscribing size bytes takes from the payer: rent for
// the inscription and its metadata plus one fee per signature.
func (s *Inscriber) Cost(size int) *types.CostResponse {
	metadata := inscription.NewInscriptionMetadata(types.KeyInscriptionMetadataAccount, solana.PublicKey{}, 0)
	metadata.UpdateAuthorities = []solana.PublicKey{{}}

	chunks := (size + s.chunkSize() - 1) / s.chunkSize()
	signatures := uint64(2 + chunks)
	lamports := common.MinimumBalance(size) +
		common.MinimumBalance(metadata.Size()) +
		signatures*common.LamportsPerSignature

	return &types.CostResponse{
		Size:     size,
		Lamports: lamports,
		Sol:      utils.LamportsToSol(lamports),
	}
}

func (s *Inscriber) send(payer solana.PrivateKey, signers []solana.PrivateKey, ixs ...solana.Instruction) (solana.Signature, error) {
	tx, err := solana.NewTransaction(ixs, s.bank.LatestBlockhash(), solana.TransactionPayer(payer.PublicKey()))
	if err != nil {
		return solana.Signature{}, err
	}
	keys := append([]solana.PrivateKey{payer}, signers...)
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range keys {
			if keys[i].PublicKey().Equals(key) {
				return &keys[i]
			}
		}
		return nil
	}); err != nil {
		return solana.Signature{}, err
	}
	return tx.Signatures[0], s.bank.ExecuteTransaction(s.ctx, tx)
}
