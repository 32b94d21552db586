package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingieX/MediRoute-sub000/config"
)

// Client Redis 客户端封装
// 当前用于排班轮转游标存储；任务队列复用同一 Redis 实例但自行管理连接
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 排班轮转游标 ──

const cursorKeyFormat = "dept:%s:lastIndex"

// advanceScript 在 Redis 服务端一步完成游标推进：
// 读取上次下标（缺省 -1），计算 (last+1) mod ringSize 并写回。
// 整个脚本原子执行，并发 worker 对同一科室推进时不会丢失更新。
var advanceScript = goredis.NewScript(`
local last = tonumber(redis.call('GET', KEYS[1]) or '-1')
local next = (last + 1) % tonumber(ARGV[1])
redis.call('SET', KEYS[1], tostring(next))
return next
`)

// AdvanceCursor 原子推进科室轮转游标，返回本次应使用的下标
// ringSize 为当前可排班员工数，必须大于 0
func (c *Client) AdvanceCursor(ctx context.Context, departmentID string, ringSize int) (int, error) {
	if ringSize <= 0 {
		return 0, fmt.Errorf("轮转环大小必须大于 0, 实际: %d", ringSize)
	}

	key := fmt.Sprintf(cursorKeyFormat, departmentID)
	next, err := advanceScript.Run(ctx, c.rdb, []string{key}, ringSize).Int()
	if err != nil {
		return 0, fmt.Errorf("推进轮转游标失败: %w", err)
	}
	return next, nil
}

// GetCursor 读取科室当前游标，键不存在时返回 -1（尚未排过班）
func (c *Client) GetCursor(ctx context.Context, departmentID string) (int, error) {
	key := fmt.Sprintf(cursorKeyFormat, departmentID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("读取轮转游标失败: %w", err)
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("轮转游标值非法 %q: %w", val, err)
	}
	return n, nil
}

// ResetCursor 删除科室游标，下次排班从头开始（运维用途）
func (c *Client) ResetCursor(ctx context.Context, departmentID string) error {
	key := fmt.Sprintf(cursorKeyFormat, departmentID)
	return c.rdb.Del(ctx, key).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
