package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

func newPeerStore(db *sqlx.DB) *peerStore {
	return &peerStore{
		db: db,
	}
}

type peerStore struct {
	db *sqlx.DB
}

type sqlDataPeer struct {
	ID         int32     `db:"id"`
	Namespace  string    `db:"namespace"`
	PeerID     string    `db:"peer_id"`
	AgentAddr  string    `db:"agent_addr"`
	MACAddress string    `db:"mac_address"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

var sqlParamsPeer = []string{
	"id",
	"namespace",
	"peer_id",
	"agent_addr",
	"mac_address",
	"created_at",
	"updated_at",
}

func (d *sqlDataPeer) Scan(m *model.Peer) error {
	var createdAt, updatedAt = m.CreatedAt, m.UpdatedAt

	if m.CreatedAt.IsZero() {
		createdAt = time.Now().Round(time.Second).UTC()
	}

	if m.UpdatedAt.IsZero() {
		updatedAt = time.Now().Round(time.Second).UTC()
	}

	d.ID = m.ID
	d.Namespace = m.Namespace
	d.PeerID = m.PeerID
	d.AgentAddr = m.AgentAddr
	d.MACAddress = m.MACAddress
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt

	return nil
}

func (d *sqlDataPeer) Model() (*model.Peer, error) {
	m := &model.Peer{
		ID:         d.ID,
		Namespace:  d.Namespace,
		PeerID:     d.PeerID,
		AgentAddr:  d.AgentAddr,
		MACAddress: d.MACAddress,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}

	return m, nil
}

func (s *peerStore) FetchAll() (map[int32]model.Peer, error) {
	return fetchAllPeers(s.db)
}

func (s *peerStore) FindByID(id int32) (*model.Peer, error) {
	return findPeerByID(s.db, id)
}

func (s *peerStore) FindByNamespaceAndPeerID(namespace, peerID string) (*model.Peer, error) {
	return findPeerByNamespaceAndPeerID(s.db, namespace, peerID)
}

func (s *peerStore) Create(m *model.Peer) error {
	return createPeer(s.db, m)
}

func (s *peerStore) Delete(id int32) error {
	return deletePeer(s.db, id)
}

func fetchAllPeers(db *sqlx.DB) (map[int32]model.Peer, error) {
	rows := make([]sqlDataPeer, 0)
	models := make(map[int32]model.Peer)

	query := "SELECT * FROM peers"
	if err := db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to fetch all peers")
	}

	for _, d := range rows {
		m, err := d.Model()
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to peer model")
		}

		models[d.ID] = *m
	}

	return models, nil
}

func findPeerByID(db *sqlx.DB, id int32) (*model.Peer, error) {
	d := sqlDataPeer{}
	query := "SELECT * FROM peers WHERE id=$1"
	if err := db.Get(&d, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find peer")
	}

	return d.Model()
}

func findPeerByNamespaceAndPeerID(db *sqlx.DB, namespace, peerID string) (*model.Peer, error) {
	d := sqlDataPeer{}
	query := "SELECT * FROM peers WHERE namespace=$1 AND peer_id=$2"
	if err := db.Get(&d, query, namespace, peerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find peer")
	}

	return d.Model()
}

func createPeer(db *sqlx.DB, m *model.Peer) error {
	d := sqlDataPeer{}
	if err := d.Scan(m); err != nil {
		return errors.Wrap(err, "failed to convert peer model to SQL data")
	}

	// Remove the id column because it's of SQL type serial
	sqlParamsWithoutID := make([]string, 0)
	for _, s := range sqlParamsPeer {
		if s != "id" {
			sqlParamsWithoutID = append(sqlParamsWithoutID, s)
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO peers (%s) VALUES (%s) RETURNING id",
		strings.Join(sqlParamsWithoutID, ", "),
		":"+strings.Join(sqlParamsWithoutID, ", :"),
	)
	rows, err := db.NamedQuery(query, d)
	if err != nil {
		return errors.Wrap(err, "failed to create peer")
	}
	if rows.Next() {
		rows.Scan(&m.ID)
	}

	return nil
}

func deletePeer(db *sqlx.DB, id int32) error {
	query := "DELETE FROM peers WHERE id=$1"
	_, err := db.Exec(query, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete peer")
	}

	return nil
}
