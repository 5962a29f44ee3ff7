package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// key 约定：
//
//	kv : lobby:player:{address} -> tableID (TTL)
//	set: lobby:seated           -> Set(address,...)
//	kv : lobby:table:{tableID}  -> TableInfo JSON (TTL)
const seatedKey = "lobby:seated"

func playerKey(addr string) string {
	return fmt.Sprintf("lobby:player:%s", addr)
}

func tableKey(id string) string {
	return fmt.Sprintf("lobby:table:%s", id)
}

func (r *redisRepo) Seat(ctx context.Context, address, tableID string, ttlSeconds int) (string, error) {
	ok, err := r.rdb.SetNX(ctx, playerKey(address), tableID, time.Duration(ttlSeconds)*time.Second).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		cur, err := r.TableOf(ctx, address)
		if err != nil {
			return "", err
		}
		return cur, ErrAlreadySeated
	}
	if err := r.rdb.SAdd(ctx, seatedKey, address).Err(); err != nil {
		return "", err
	}
	return tableID, nil
}

func (r *redisRepo) TableOf(ctx context.Context, address string) (string, error) {
	val, err := r.rdb.Get(ctx, playerKey(address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// KEYS[1] = playerKey, KEYS[2] = seatedKey, ARGV[1] = address, ARGV[2] = table key prefix
const releaseScript = `
local id = redis.call("GET", KEYS[1])
if id then
    redis.call("DEL", ARGV[2] .. id)
end
redis.call("DEL", KEYS[1])
redis.call("SREM", KEYS[2], ARGV[1])
return 1
`

func (r *redisRepo) Release(ctx context.Context, address string) error {
	playerK := playerKey(address)
	err := r.rdb.Eval(ctx, releaseScript, []string{playerK, seatedKey}, address, tableKey("")).Err()
	if err == nil {
		return nil
	}

	// 回退到非原子实现
	id, err := r.TableOf(ctx, address)
	if err != nil {
		return err
	}
	p := r.rdb.Pipeline()
	if id != "" {
		p.Del(ctx, tableKey(id))
	}
	p.Del(ctx, playerK)
	p.SRem(ctx, seatedKey, address)
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) Count(ctx context.Context) (int64, error) {
	return r.rdb.SCard(ctx, seatedKey).Result()
}

func (r *redisRepo) SaveTable(ctx context.Context, t *TableInfo, ttlSeconds int) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, tableKey(t.ID), data, time.Duration(ttlSeconds)*time.Second).Err()
}
