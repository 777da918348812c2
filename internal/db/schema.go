package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply installs the profile/preference schema, the signup trigger and the
// row-level-security policies. Safe to call on every boot: tables use
// IF NOT EXISTS, the trigger is recreated atomically and policy creation
// swallows duplicate_object.
//
// The script is sent as a single batch, so the pool must run in simple
// query protocol (see cmd/main.go).
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const schema = `
-- Platform shim -------------------------------------------------------------
-- On Supabase the auth schema, auth.users and auth.uid() are owned by the
-- platform and these statements are no-ops. Plain Postgres (local dev, CI)
-- gets a minimal stand-in so the trigger and the policies resolve.

create schema if not exists auth;

create table if not exists auth.users (
    id                 uuid primary key,
    email              text unique,
    raw_user_meta_data jsonb not null default '{}'::jsonb,
    created_at         timestamptz not null default now()
);

do $$
begin
    if to_regprocedure('auth.uid()') is null then
        execute $fn$
            create function auth.uid() returns uuid
            language sql stable
            as $body$
                select nullif(current_setting('request.jwt.claim.sub', true), '')::uuid
            $body$;
        $fn$;
    end if;
end $$;

-- Tables ---------------------------------------------------------------------

create table if not exists public.profiles (
    id         uuid primary key references auth.users(id) on delete cascade,
    name       text not null default '',
    created_at timestamptz not null default now()
);

create table if not exists public.preferences (
    user_id      uuid primary key references public.profiles(id) on delete cascade,
    default_from text not null,
    default_to   text not null,
    updated_at   timestamptz not null default now()
);

-- Profile auto-provisioning --------------------------------------------------
-- Runs inside the signup transaction; ON CONFLICT DO NOTHING so an already
-- existing profile can never abort user registration.

create or replace function public.handle_new_user()
returns trigger
language plpgsql
security definer set search_path = public
as $$
begin
    insert into public.profiles (id, name)
    values (new.id, coalesce(new.raw_user_meta_data->>'name', ''))
    on conflict (id) do nothing;
    return new;
end;
$$;

drop trigger if exists on_auth_user_created on auth.users;
create trigger on_auth_user_created
    after insert on auth.users
    for each row execute function public.handle_new_user();

-- Row-level security ---------------------------------------------------------
-- Each requester sees and writes only rows keyed by their own id. Profiles
-- have no insert or delete policy: rows are created by the trigger and
-- removed by the auth.users cascade only.

alter table public.profiles enable row level security;
alter table public.preferences enable row level security;

do $$ begin
    create policy profiles_select_own on public.profiles
        for select using (auth.uid() = id);
exception when duplicate_object then null;
end $$;

do $$ begin
    create policy profiles_update_own on public.profiles
        for update using (auth.uid() = id);
exception when duplicate_object then null;
end $$;

do $$ begin
    create policy preferences_select_own on public.preferences
        for select using (auth.uid() = user_id);
exception when duplicate_object then null;
end $$;

do $$ begin
    create policy preferences_insert_own on public.preferences
        for insert with check (auth.uid() = user_id);
exception when duplicate_object then null;
end $$;

do $$ begin
    create policy preferences_update_own on public.preferences
        for update using (auth.uid() = user_id);
exception when duplicate_object then null;
end $$;
`
