package services

import (
	"context"
	"encoding/json"

	"CheerioGo/config"
	"CheerioGo/models"
)

// 用户资料变更的广播频道，多实例部署时保证各实例缓存一致
const userUpdatedChannel = "cheerio:userUpdated"

// PublishUserUpdated 广播用户资料变更事件
func PublishUserUpdated(ctx context.Context, user models.User) {
	payload, err := json.Marshal(models.NewUserResponse(&user))
	if err != nil {
		config.Logger.Errorw("序列化用户变更事件失败", "uid", user.ID, "error", err)
		return
	}
	if err := config.RedisClient.Publish(ctx, userUpdatedChannel, payload).Err(); err != nil {
		config.Logger.Warnw("广播用户变更事件失败", "uid", user.ID, "error", err)
	}
}

// SubscribeUserUpdates 订阅用户资料变更，把最新昵称同步进监测服务
func SubscribeUserUpdates(ctx context.Context, monitor *MonitorService) {
	pubsub := config.RedisClient.Subscribe(ctx, userUpdatedChannel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var user models.UserResponse
				if err := json.Unmarshal([]byte(msg.Payload), &user); err != nil {
					config.Logger.Warnw("解析用户变更事件失败", "error", err)
					continue
				}
				monitor.SetDisplayName(user.ID, user.Name)
				config.Logger.Infow("收到用户资料变更", "uid", user.ID, "name", user.Name)
			}
		}
	}()
}
