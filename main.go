package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fe-v2/internal/config"
	"fe-v2/internal/container"
	"fe-v2/internal/domain"
	"fe-v2/internal/view"
	"fe-v2/pkg/logger"
)

// app drives the pages from a line-based command loop. One page of each
// kind is alive at a time; opening a page again reloads it.
type app struct {
	ctx    context.Context
	deps   view.Deps
	topbar *view.TopBar
	route  string

	profile *view.ProfilePage
	mine    *view.MyActivitiesPage
	detail  *view.ActivityDetailView
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	log.WithFields(map[string]interface{}{
		"api_base_url": cfg.APIBaseURL,
		"log_level":    cfg.LogLevel,
	}).Info("Starting fe-v2 client")

	ctx := context.Background()
	a := &app{
		ctx:    ctx,
		deps:   c.ViewDeps(),
		topbar: view.NewTopBar(ctx, c.ViewDeps()),
		route:  "/",
	}
	a.topbar.Refresh()

	fmt.Println(a.topbar.Render(a.route))
	fmt.Println("输入 help 查看命令")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		a.dispatch(line)
	}
}

func (a *app) dispatch(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println(helpText)
	case "login":
		a.login(args)
	case "logout":
		a.logout()
	case "profile":
		a.openProfile()
	case "set":
		a.setField(args)
	case "avatar":
		a.pickAvatar(args)
	case "save":
		a.saveProfile()
	case "mine":
		a.openMine()
	case "tab":
		a.selectTab(args)
	case "decide":
		a.decide(args)
	case "open":
		a.openDetail(args)
	case "apply":
		a.apply()
	case "user":
		a.selectUser(args)
	case "close":
		a.closeOverlay()
	default:
		fmt.Println("未知命令，输入 help 查看命令")
	}
}

const helpText = `命令:
  login <用户名>        登录（开发后端）
  logout                退出登录
  profile               个人主页
  set <字段> <内容>     编辑 signature/bio/habits
  avatar <文件路径>     选择新头像 (PNG, ≤1MB)
  save                  保存个人资料
  mine                  我的活动
  tab <名称>            切换区块 created/participations/applications/received
  decide <申请ID> <accepted|rejected>   处理申请
  open <活动ID>         打开活动详情
  apply                 在打开的详情中申请加入
  user <用户ID>         查看用户资料
  close                 关闭当前弹层
  quit                  退出`

func (a *app) render(body string) {
	fmt.Println(a.topbar.Render(a.route))
	fmt.Println(body)
}

func (a *app) login(args []string) {
	if len(args) != 1 {
		fmt.Println("用法: login <用户名>")
		return
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := a.deps.Client.Post(a.ctx, "user", "login", map[string]string{"username": args[0]}, &out); err != nil {
		fmt.Println("登录失败:", err)
		return
	}
	if err := a.deps.Session.SetToken(out.Token); err != nil {
		fmt.Println("保存登录状态失败:", err)
		return
	}
	a.topbar.Refresh()
	fmt.Println("登录成功")
}

func (a *app) logout() {
	page := a.profilePage()
	route, err := page.Logout()
	if err != nil {
		fmt.Println("退出失败:", err)
		return
	}
	a.route = route
	a.render("已退出登录")
}

func (a *app) profilePage() *view.ProfilePage {
	if a.profile == nil || a.profile.Closed() {
		a.profile = view.NewProfilePage(a.ctx, a.deps)
	}
	return a.profile
}

func (a *app) openProfile() {
	a.route = "/profile-page"
	page := a.profilePage()
	page.Load()
	a.render(page.Render())
}

func (a *app) setField(args []string) {
	if a.profile == nil || len(args) < 2 {
		fmt.Println("用法: profile 后使用 set <字段> <内容>")
		return
	}
	value := strings.Join(args[1:], " ")
	switch args[0] {
	case "signature":
		a.profile.SetSignature(value)
	case "bio":
		a.profile.SetBio(value)
	case "habits":
		a.profile.SetHabits(value)
	default:
		fmt.Println("字段只能是 signature/bio/habits")
		return
	}
	a.render(a.profile.Render())
}

func (a *app) pickAvatar(args []string) {
	if a.profile == nil || len(args) != 1 {
		fmt.Println("用法: profile 后使用 avatar <文件路径>")
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("读取文件失败:", err)
		return
	}
	mimeType := "application/octet-stream"
	if strings.HasSuffix(strings.ToLower(args[0]), ".png") {
		mimeType = "image/png"
	}
	if err := a.profile.SetAvatar(args[0], mimeType, data); err != nil {
		a.render(a.profile.Render())
		return
	}
	a.render(a.profile.Render())
}

func (a *app) saveProfile() {
	if a.profile == nil {
		fmt.Println("请先打开 profile")
		return
	}
	_ = a.profile.Save()
	a.render(a.profile.Render())
}

func (a *app) openMine() {
	a.route = "/my-activities"
	if a.mine != nil {
		a.mine.Close()
	}
	a.mine = view.NewMyActivitiesPage(a.ctx, a.deps)
	a.mine.Load()
	a.render(a.mine.Render())
}

func (a *app) selectTab(args []string) {
	if a.mine == nil || len(args) != 1 {
		fmt.Println("用法: mine 后使用 tab <名称>")
		return
	}
	a.mine.SelectTab(args[0])
	a.render(a.mine.Render())
}

func (a *app) decide(args []string) {
	if a.mine == nil || len(args) != 2 {
		fmt.Println("用法: mine 后使用 decide <申请ID> <accepted|rejected>")
		return
	}
	a.mine.Decide(args[0], domain.ApplicationStatus(args[1]))
	a.render(a.mine.Render())
}

func (a *app) openDetail(args []string) {
	if len(args) != 1 {
		fmt.Println("用法: open <活动ID>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("无效的活动ID")
		return
	}

	if a.detail != nil {
		a.detail.Close()
	}
	a.detail = view.NewActivityDetailView(a.ctx, a.deps, id)
	a.detail.Load()
	a.render(a.detail.Render())
}

func (a *app) apply() {
	if a.detail == nil || a.detail.Closed() {
		fmt.Println("请先 open 一个活动")
		return
	}
	a.detail.Apply()
	a.render(a.detail.Render())
}

func (a *app) selectUser(args []string) {
	if len(args) != 1 {
		fmt.Println("用法: user <用户ID>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("无效的用户ID")
		return
	}

	var overlay *view.UserProfileView
	switch {
	case a.detail != nil && !a.detail.Closed():
		overlay = a.detail.SelectUser(id)
	case a.mine != nil && !a.mine.Closed():
		overlay = a.mine.SelectUser(id)
	default:
		fmt.Println("请先打开活动详情或我的活动")
		return
	}
	a.render(overlay.Render())
}

func (a *app) closeOverlay() {
	switch {
	case a.detail != nil && a.detail.SelectedUser() != nil:
		a.detail.CloseUserProfile()
		a.render(a.detail.Render())
	case a.detail != nil && !a.detail.Closed():
		a.detail.HandleOverlayClick(false)
		fmt.Println("已关闭")
	case a.mine != nil:
		a.mine.CloseUserProfile()
		a.render(a.mine.Render())
	}
}
